package models

import "time"

type GalleryEvent struct {
	ID          string      `firestore:"id" json:"id"`
	Name        string      `firestore:"name" json:"name"`
	Description string      `firestore:"description" json:"description"`
	Date        time.Time   `firestore:"date" json:"date"`
	IsPublished bool        `firestore:"isPublished" json:"isPublished"`
	Media       []MediaItem `firestore:"media" json:"media"`
	CreatedAt   time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `firestore:"updatedAt" json:"updatedAt"`
}
