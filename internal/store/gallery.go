package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
)

type galleryStore struct {
	docStore[models.GalleryEvent]
}

func NewGalleryStore(client *firestore.Client) *galleryStore {
	return &galleryStore{docStore: newDocStore[models.GalleryEvent](client, "gallery_events", "event")}
}

func (s *galleryStore) Create(ctx context.Context, e *models.GalleryEvent) error {
	return s.create(ctx, e.ID, e)
}

func (s *galleryStore) Get(ctx context.Context, id string) (*models.GalleryEvent, error) {
	return s.get(ctx, id)
}

// Mutate applies fn to the stored event inside a transaction.
func (s *galleryStore) Mutate(ctx context.Context, id string, fn func(*models.GalleryEvent) error) (*models.GalleryEvent, error) {
	return s.mutate(ctx, id, fn)
}

func (s *galleryStore) Delete(ctx context.Context, id string) error {
	return s.delete(ctx, id)
}

func (s *galleryStore) List(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error) {
	q := s.collection.Query
	if f.IsPublished != nil {
		q = q.Where("isPublished", "==", *f.IsPublished)
	}
	return s.query(ctx, q.OrderBy("date", firestore.Desc))
}
