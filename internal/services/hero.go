package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const heroFolder = "hero"

type heroHSStore interface {
	Create(ctx context.Context, h *models.HeroContent) error
	Get(ctx context.Context, id string) (*models.HeroContent, error)
	Mutate(ctx context.Context, id string, fn func(*models.HeroContent) error) (*models.HeroContent, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.HeroContent, error)
	Activate(ctx context.Context, id string, now time.Time) error
	Deactivate(ctx context.Context, id string, now time.Time) error
	GetActive(ctx context.Context) (*models.HeroContent, error)
}

type heroService struct {
	store heroHSStore
	media media
	now   func() time.Time
}

func NewHeroService(store heroHSStore, delegate mediaDelegate, rec uploadRecorder) *heroService {
	return &heroService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

func (s *heroService) Create(ctx context.Context, req dto.CreateHeroRequest, files []dto.FileUpload) (*models.HeroContent, error) {
	if err := required("title", req.Title); err != nil {
		return nil, err
	}

	now := s.now()
	h := &models.HeroContent{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		CTAText:   req.CTAText,
		CTALink:   req.CTALink,
		IsActive:  req.IsActive,
		Media:     []models.MediaItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(files) > 0 {
		items, err := uploadMediaItems(ctx, s.media, files, heroFolder, now)
		if err != nil {
			return nil, err
		}
		h.Media = items
	}

	if err := s.store.Create(ctx, h); err != nil {
		s.media.remove(ctx, publicIDs(h.Media)...)
		return nil, err
	}
	logger.FromContext(ctx).Info("hero content created", "hero_id", h.ID, "active", h.IsActive)
	return h, nil
}

func (s *heroService) Get(ctx context.Context, id string) (*models.HeroContent, error) {
	return s.store.Get(ctx, id)
}

func (s *heroService) List(ctx context.Context) ([]*models.HeroContent, error) {
	return s.store.List(ctx)
}

func (s *heroService) GetActive(ctx context.Context) (*models.HeroContent, error) {
	return s.store.GetActive(ctx)
}

func (s *heroService) Update(ctx context.Context, id string, req dto.UpdateHeroRequest) (*models.HeroContent, error) {
	now := s.now()
	h, err := s.store.Mutate(ctx, id, func(h *models.HeroContent) error {
		helpers.Assign(&h.Title, req.Title)
		helpers.Assign(&h.Subtitle, req.Subtitle)
		helpers.Assign(&h.CTAText, req.CTAText)
		helpers.Assign(&h.CTALink, req.CTALink)
		if err := required("title", h.Title); err != nil {
			return err
		}
		h.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && *req.IsActive != h.IsActive {
		if *req.IsActive {
			err = s.store.Activate(ctx, id, now)
		} else {
			err = s.store.Deactivate(ctx, id, now)
		}
		if err != nil {
			return nil, err
		}
		h.IsActive = *req.IsActive
	}
	return h, nil
}

// Activate makes id the single active hero content.
func (s *heroService) Activate(ctx context.Context, id string) (*models.HeroContent, error) {
	if err := s.store.Activate(ctx, id, s.now()); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("hero content activated", "hero_id", id)
	return s.store.Get(ctx, id)
}

func (s *heroService) SetCurrentMedia(ctx context.Context, id string, index int) (*models.HeroContent, error) {
	now := s.now()
	return s.store.Mutate(ctx, id, func(h *models.HeroContent) error {
		if index < 0 || index >= len(h.Media) {
			return errs.NewValidationError(fmt.Sprintf("index must be between 0 and %d", max(len(h.Media)-1, 0)))
		}
		h.CurrentMediaIndex = index
		h.UpdatedAt = now
		return nil
	})
}

func (s *heroService) AddMedia(ctx context.Context, id string, files []dto.FileUpload) (*models.HeroContent, error) {
	if len(files) == 0 {
		return nil, errs.NewValidationError("no media files provided")
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	now := s.now()
	items, err := uploadMediaItems(ctx, s.media, files, heroFolder, now)
	if err != nil {
		return nil, err
	}
	h, err := s.store.Mutate(ctx, id, func(h *models.HeroContent) error {
		h.Media = append(h.Media, items...)
		h.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.media.remove(ctx, publicIDs(items)...)
		return nil, err
	}
	return h, nil
}

// RemoveMedia drops one item and clamps the current media index against the
// list as stored at write time.
func (s *heroService) RemoveMedia(ctx context.Context, id, mediaID string) (*models.HeroContent, error) {
	var removed models.MediaItem
	now := s.now()
	h, err := s.store.Mutate(ctx, id, func(h *models.HeroContent) error {
		remaining, item, ok := models.RemoveMedia(h.Media, mediaID)
		if !ok {
			return errs.NewNotFoundError("media item not found")
		}
		removed = *item
		h.Media = remaining
		h.ClampMediaIndex()
		h.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.media.remove(ctx, removed.PublicID)
	return h, nil
}

func (s *heroService) Delete(ctx context.Context, id string) error {
	h, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.remove(ctx, publicIDs(h.Media)...)
	logger.FromContext(ctx).Info("hero content deleted", "hero_id", id)
	return nil
}
