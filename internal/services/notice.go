package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const noticeFolder = "notices"

type noticeNSStore interface {
	Create(ctx context.Context, n *models.Notice) error
	Get(ctx context.Context, id string) (*models.Notice, error)
	Update(ctx context.Context, n *models.Notice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error)
}

type noticeService struct {
	store noticeNSStore
	media media
	now   func() time.Time
}

func NewNoticeService(store noticeNSStore, delegate mediaDelegate, rec uploadRecorder) *noticeService {
	return &noticeService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

func (s *noticeService) Create(ctx context.Context, req dto.CreateNoticeRequest, file *dto.FileUpload) (*models.Notice, error) {
	if req.Type == "" {
		req.Type = models.NoticeAnnouncement
	}
	if req.Status == "" {
		req.Status = models.NoticeDraft
	}
	if err := firstError(
		required("title", req.Title),
		required("content", req.Content),
		oneOf("type", req.Type, models.NoticeTypes),
		oneOf("status", req.Status, models.NoticeStatuses),
	); err != nil {
		return nil, err
	}

	now := s.now()
	n := &models.Notice{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Type:      req.Type,
		Important: req.Important,
		CreatedAt: now,
		UpdatedAt: now,
	}
	n.SetStatus(req.Status, now)

	if file != nil {
		doc, err := s.media.attachment(ctx, *file, noticeFolder)
		if err != nil {
			return nil, err
		}
		n.Document = doc
	}

	if err := s.store.Create(ctx, n); err != nil {
		s.media.removeAttachment(ctx, n.Document)
		return nil, err
	}
	logger.FromContext(ctx).Info("notice created", "notice_id", n.ID, "status", n.Status)
	return n, nil
}

func (s *noticeService) Get(ctx context.Context, id string) (*models.Notice, error) {
	return s.store.Get(ctx, id)
}

// GetPublic hides notices that are not published.
func (s *noticeService) GetPublic(ctx context.Context, id string) (*models.Notice, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status != models.NoticePublished {
		return nil, errs.NewForbiddenError("notice is not published")
	}
	return n, nil
}

func (s *noticeService) List(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error) {
	if f.Type != "" {
		if err := oneOf("type", f.Type, models.NoticeTypes); err != nil {
			return nil, err
		}
	}
	if f.Status != "" {
		if err := oneOf("status", f.Status, models.NoticeStatuses); err != nil {
			return nil, err
		}
	}
	notices, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(notices, f.Search, func(n *models.Notice) []string {
		return []string{n.Title, n.Content}
	}), nil
}

// ListPublic returns published notices, important ones first, then newest.
func (s *noticeService) ListPublic(ctx context.Context, f dto.NoticeFilter) ([]*models.Notice, error) {
	f.PublishedOnly = true
	f.Status = ""
	notices, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notices, func(i, j int) bool {
		if notices[i].Important != notices[j].Important {
			return notices[i].Important
		}
		return publishedAt(notices[i]).After(publishedAt(notices[j]))
	})
	return notices, nil
}

func publishedAt(n *models.Notice) time.Time {
	if n.Date != nil {
		return *n.Date
	}
	return n.CreatedAt
}

func (s *noticeService) Update(ctx context.Context, id string, req dto.UpdateNoticeRequest, file *dto.FileUpload) (*models.Notice, error) {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		if err := oneOf("type", *req.Type, models.NoticeTypes); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := oneOf("status", *req.Status, models.NoticeStatuses); err != nil {
			return nil, err
		}
	}

	now := s.now()
	helpers.Assign(&n.Title, req.Title)
	helpers.Assign(&n.Content, req.Content)
	helpers.Assign(&n.Type, req.Type)
	helpers.Assign(&n.Important, req.Important)
	if req.Status != nil {
		n.SetStatus(*req.Status, now)
	}
	if err := firstError(required("title", n.Title), required("content", n.Content)); err != nil {
		return nil, err
	}

	old, err := replaceAttachment(ctx, s.media, &n.Document, file, req.RemoveDocument, noticeFolder)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt = now

	err = s.store.Update(ctx, n)
	s.media.settle(ctx, n.Document, old, err)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *noticeService) UpdateStatus(ctx context.Context, id, status string) (*models.Notice, error) {
	if err := oneOf("status", status, models.NoticeStatuses); err != nil {
		return nil, err
	}
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	n.SetStatus(status, now)
	n.UpdatedAt = now
	if err := s.store.Update(ctx, n); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("notice status updated", "notice_id", id, "status", status)
	return n, nil
}

func (s *noticeService) Delete(ctx context.Context, id string) error {
	n, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.removeAttachment(ctx, n.Document)
	logger.FromContext(ctx).Info("notice deleted", "notice_id", id)
	return nil
}
