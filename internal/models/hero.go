package models

import "time"

// HeroContent is the landing page banner. At most one document is active;
// the store enforces this transactionally.
type HeroContent struct {
	ID                string      `firestore:"id" json:"id"`
	Title             string      `firestore:"title" json:"title"`
	Subtitle          string      `firestore:"subtitle" json:"subtitle"`
	CTAText           string      `firestore:"ctaText,omitempty" json:"ctaText,omitempty"`
	CTALink           string      `firestore:"ctaLink,omitempty" json:"ctaLink,omitempty"`
	IsActive          bool        `firestore:"isActive" json:"isActive"`
	Media             []MediaItem `firestore:"media" json:"media"`
	CurrentMediaIndex int         `firestore:"currentMediaIndex" json:"currentMediaIndex"`
	CreatedAt         time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

// ClampMediaIndex keeps CurrentMediaIndex within [0, len(Media)-1], or 0
// when there is no media.
func (h *HeroContent) ClampMediaIndex() {
	switch {
	case len(h.Media) == 0 || h.CurrentMediaIndex < 0:
		h.CurrentMediaIndex = 0
	case h.CurrentMediaIndex > len(h.Media)-1:
		h.CurrentMediaIndex = len(h.Media) - 1
	}
}
