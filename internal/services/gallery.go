package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const (
	galleryFolder = "gallery"
	// concurrent uploads per bulk request
	uploadConcurrency = 4
)

type galleryGSStore interface {
	Create(ctx context.Context, e *models.GalleryEvent) error
	Get(ctx context.Context, id string) (*models.GalleryEvent, error)
	Mutate(ctx context.Context, id string, fn func(*models.GalleryEvent) error) (*models.GalleryEvent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error)
}

type galleryService struct {
	store galleryGSStore
	media media
	now   func() time.Time
}

func NewGalleryService(store galleryGSStore, delegate mediaDelegate, rec uploadRecorder) *galleryService {
	return &galleryService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

func (s *galleryService) Create(ctx context.Context, req dto.CreateEventRequest) (*models.GalleryEvent, error) {
	if err := firstError(required("name", req.Name), required("date", req.Date)); err != nil {
		return nil, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := &models.GalleryEvent{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		IsPublished: req.IsPublished,
		Media:       []models.MediaItem{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("gallery event created", "event_id", e.ID)
	return e, nil
}

func (s *galleryService) Get(ctx context.Context, id string) (*models.GalleryEvent, error) {
	return s.store.Get(ctx, id)
}

func (s *galleryService) GetPublic(ctx context.Context, id string) (*models.GalleryEvent, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.IsPublished {
		return nil, errs.NewForbiddenError("event is not published")
	}
	return e, nil
}

func (s *galleryService) List(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error) {
	events, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(events, f.Search, func(e *models.GalleryEvent) []string {
		return []string{e.Name, e.Description}
	}), nil
}

func (s *galleryService) ListPublic(ctx context.Context, f dto.EventFilter) ([]*models.GalleryEvent, error) {
	f.IsPublished = helpers.Ptr(true)
	return s.List(ctx, f)
}

func (s *galleryService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.GalleryEvent, error) {
	var date *time.Time
	if req.Date != nil {
		d, err := parseDate("date", *req.Date)
		if err != nil {
			return nil, err
		}
		date = &d
	}
	now := s.now()
	return s.store.Mutate(ctx, id, func(e *models.GalleryEvent) error {
		helpers.Assign(&e.Name, req.Name)
		helpers.Assign(&e.Description, req.Description)
		helpers.Assign(&e.IsPublished, req.IsPublished)
		helpers.Assign(&e.Date, date)
		if err := required("name", e.Name); err != nil {
			return err
		}
		e.UpdatedAt = now
		return nil
	})
}

func (s *galleryService) SetPublished(ctx context.Context, id string, published bool) (*models.GalleryEvent, error) {
	return s.Update(ctx, id, dto.UpdateEventRequest{IsPublished: &published})
}

// Delete removes the event and then every stored media object it held.
func (s *galleryService) Delete(ctx context.Context, id string) error {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.remove(ctx, publicIDs(e.Media)...)
	logger.FromContext(ctx).Info("gallery event deleted", "event_id", id, "media", len(e.Media))
	return nil
}

// AddMedia uploads files concurrently and appends them in request order. If
// any upload fails, the ones that succeeded are removed and the first error
// is returned. The append runs in a transaction so concurrent bulk uploads to
// one event all land.
func (s *galleryService) AddMedia(ctx context.Context, id string, files []dto.FileUpload) (*models.GalleryEvent, error) {
	if len(files) == 0 {
		return nil, errs.NewValidationError("no media files provided")
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}

	now := s.now()
	items, err := uploadMediaItems(ctx, s.media, files, galleryFolder, now)
	if err != nil {
		return nil, err
	}

	e, err := s.store.Mutate(ctx, id, func(e *models.GalleryEvent) error {
		e.Media = append(e.Media, items...)
		e.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.media.remove(ctx, publicIDs(items)...)
		return nil, err
	}
	logger.FromContext(ctx).Info("gallery media added", "event_id", id, "count", len(items))
	return e, nil
}

func (s *galleryService) RemoveMedia(ctx context.Context, eventID, mediaID string) (*models.GalleryEvent, error) {
	var removed models.MediaItem
	now := s.now()
	e, err := s.store.Mutate(ctx, eventID, func(e *models.GalleryEvent) error {
		remaining, item, ok := models.RemoveMedia(e.Media, mediaID)
		if !ok {
			return errs.NewNotFoundError("media item not found")
		}
		removed = *item
		e.Media = remaining
		e.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.media.remove(ctx, removed.PublicID)
	return e, nil
}

func uploadMediaItems(ctx context.Context, m media, files []dto.FileUpload, folder string, now time.Time) ([]models.MediaItem, error) {
	items := make([]models.MediaItem, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, f := range files {
		g.Go(func() error {
			obj, err := m.store(gctx, f, folder)
			if err != nil {
				return err
			}
			items[i] = models.MediaItem{
				ID:         uuid.NewString(),
				PublicID:   obj.PublicID,
				URL:        obj.URL,
				Type:       mediaType(f.ContentType),
				Name:       f.Filename,
				Size:       obj.Size,
				UploadedAt: now,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.remove(ctx, publicIDs(items)...)
		return nil, err
	}
	return items, nil
}

func publicIDs(items []models.MediaItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.PublicID)
	}
	return ids
}
