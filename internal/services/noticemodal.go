package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/internal/noticegate"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type noticeModalNMStore interface {
	Get(ctx context.Context) (*models.NoticeModalSettings, error)
	Save(ctx context.Context, settings *models.NoticeModalSettings, now time.Time) error
}

type noticeNMStore interface {
	Get(ctx context.Context, id string) (*models.Notice, error)
}

// ModalGate is the per-visitor gate, built by the handler from cookies.
type ModalGate interface {
	Eligible(ctx context.Context, s noticegate.Settings) bool
	Show(ctx context.Context, s noticegate.Settings) bool
	Dismiss(ctx context.Context, noticeID string)
}

type noticeModalService struct {
	settings noticeModalNMStore
	notices  noticeNMStore
	now      func() time.Time
}

func NewNoticeModalService(settings noticeModalNMStore, notices noticeNMStore) *noticeModalService {
	return &noticeModalService{settings: settings, notices: notices, now: time.Now}
}

func (s *noticeModalService) Settings(ctx context.Context) (*models.NoticeModalSettings, error) {
	return s.settings.Get(ctx)
}

func (s *noticeModalService) UpdateSettings(ctx context.Context, req dto.UpdateNoticeModalRequest) (*models.NoticeModalSettings, error) {
	if req.DelaySeconds < 0 || req.DaysBeforeShowAgain < 0 {
		return nil, errs.NewValidationError("delaySeconds and daysBeforeShowAgain must not be negative")
	}
	if req.Enabled && req.SelectedNoticeID == "" {
		return nil, errs.NewValidationError("selectedNoticeId is required when the modal is enabled")
	}
	if req.SelectedNoticeID != "" {
		n, err := s.notices.Get(ctx, req.SelectedNoticeID)
		if err != nil {
			return nil, err
		}
		if req.Enabled && n.Status != models.NoticePublished {
			return nil, errs.NewValidationError("selected notice is not published")
		}
	}

	settings := &models.NoticeModalSettings{
		Enabled:             req.Enabled,
		SelectedNoticeID:    req.SelectedNoticeID,
		DelaySeconds:        req.DelaySeconds,
		DaysBeforeShowAgain: req.DaysBeforeShowAgain,
	}
	if err := s.settings.Save(ctx, settings, s.now()); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("notice modal updated", "enabled", settings.Enabled, "notice_id", settings.SelectedNoticeID)
	return settings, nil
}

// Decide reports whether the visitor is eligible and how long the site
// should wait before confirming with Show. Any failure means "don't show".
func (s *noticeModalService) Decide(ctx context.Context, gate ModalGate) dto.NoticeModalDecision {
	settings, notice, ok := s.active(ctx)
	if !ok {
		return dto.NoticeModalDecision{}
	}
	if !gate.Eligible(ctx, gateSettings(settings)) {
		return dto.NoticeModalDecision{DelaySeconds: settings.DelaySeconds}
	}
	return dto.NoticeModalDecision{Show: true, DelaySeconds: settings.DelaySeconds, Notice: notice}
}

// Show runs the delayed check and marks the notice shown for the session.
func (s *noticeModalService) Show(ctx context.Context, gate ModalGate) dto.NoticeModalDecision {
	settings, notice, ok := s.active(ctx)
	if !ok || !gate.Show(ctx, gateSettings(settings)) {
		return dto.NoticeModalDecision{}
	}
	return dto.NoticeModalDecision{Show: true, DelaySeconds: settings.DelaySeconds, Notice: notice}
}

func (s *noticeModalService) Dismiss(ctx context.Context, gate ModalGate, noticeID string) error {
	if err := required("noticeId", noticeID); err != nil {
		return err
	}
	gate.Dismiss(ctx, noticeID)
	return nil
}

// active loads the settings and the selected notice, which must be published.
func (s *noticeModalService) active(ctx context.Context) (*models.NoticeModalSettings, *models.Notice, bool) {
	log := logger.FromContext(ctx)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		log.Warn("notice modal settings unavailable", "error", err)
		return nil, nil, false
	}
	if !settings.Enabled || settings.SelectedNoticeID == "" {
		return settings, nil, false
	}
	n, err := s.notices.Get(ctx, settings.SelectedNoticeID)
	if err != nil {
		log.Warn("notice modal notice unavailable", "notice_id", settings.SelectedNoticeID, "error", err)
		return settings, nil, false
	}
	if n.Status != models.NoticePublished {
		return settings, nil, false
	}
	return settings, n, true
}

func gateSettings(m *models.NoticeModalSettings) noticegate.Settings {
	return noticegate.Settings{
		Enabled:             m.Enabled,
		NoticeID:            m.SelectedNoticeID,
		DaysBeforeShowAgain: m.DaysBeforeShowAgain,
	}
}
