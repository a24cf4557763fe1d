package models

import "time"

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaItem is a stored object embedded in a gallery event or hero content.
// It has no lifecycle of its own.
type MediaItem struct {
	ID         string    `firestore:"id" json:"id"`
	PublicID   string    `firestore:"publicId" json:"publicId"`
	URL        string    `firestore:"url" json:"url"`
	Type       string    `firestore:"type" json:"type"`
	Name       string    `firestore:"name" json:"name"`
	Size       int64     `firestore:"size" json:"size"`
	UploadedAt time.Time `firestore:"uploadedAt" json:"uploadedAt"`
}

// Attachment is a single uploaded file referenced by a document field.
type Attachment struct {
	URL      string `firestore:"url" json:"url"`
	PublicID string `firestore:"publicId" json:"publicId"`
	Name     string `firestore:"name,omitempty" json:"name,omitempty"`
	Format   string `firestore:"format,omitempty" json:"format,omitempty"`
}

// RemoveMedia drops the item with the given id and reports whether it existed.
func RemoveMedia(items []MediaItem, id string) ([]MediaItem, *MediaItem, bool) {
	for i := range items {
		if items[i].ID == id {
			removed := items[i]
			out := append(append([]MediaItem{}, items[:i]...), items[i+1:]...)
			return out, &removed, true
		}
	}
	return items, nil, false
}
