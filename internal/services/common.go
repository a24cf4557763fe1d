package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

// mediaDelegate stores uploaded files outside the document store.
type mediaDelegate interface {
	Store(ctx context.Context, file dto.FileUpload, folder string) (dto.StoredObject, error)
	Remove(ctx context.Context, publicID string) error
}

type uploadRecorder interface {
	IncrementUpload(folder string)
}

// media wraps the delegate with upload accounting and best-effort cleanup.
type media struct {
	delegate mediaDelegate
	recorder uploadRecorder
}

func newMedia(delegate mediaDelegate, recorder uploadRecorder) media {
	return media{delegate: delegate, recorder: recorder}
}

func (m media) store(ctx context.Context, file dto.FileUpload, folder string) (dto.StoredObject, error) {
	obj, err := m.delegate.Store(ctx, file, folder)
	if err != nil {
		logger.FromContext(ctx).Error("media upload failed", "folder", folder, "file", file.Filename, "error", err)
		return obj, err
	}
	if m.recorder != nil {
		m.recorder.IncrementUpload(folder)
	}
	return obj, nil
}

func (m media) attachment(ctx context.Context, file dto.FileUpload, folder string) (*models.Attachment, error) {
	obj, err := m.store(ctx, file, folder)
	if err != nil {
		return nil, err
	}
	return &models.Attachment{
		URL:      obj.URL,
		PublicID: obj.PublicID,
		Name:     file.Filename,
		Format:   obj.Format,
	}, nil
}

// remove deletes stored objects after their document is gone. Failures are
// logged and never returned.
func (m media) remove(ctx context.Context, publicIDs ...string) {
	log := logger.FromContext(ctx)
	for _, id := range publicIDs {
		if id == "" {
			continue
		}
		if err := m.delegate.Remove(ctx, id); err != nil {
			log.Warn("media cleanup failed", "public_id", id, "error", err)
		}
	}
}

func (m media) removeAttachment(ctx context.Context, a *models.Attachment) {
	if a != nil {
		m.remove(ctx, a.PublicID)
	}
}

// settle removes whichever attachment lost after a save: the new one when
// the save failed, the replaced one when it succeeded.
func (m media) settle(ctx context.Context, current, old *models.Attachment, saveErr error) {
	if current == old {
		return
	}
	if saveErr != nil {
		m.removeAttachment(ctx, current)
		return
	}
	m.removeAttachment(ctx, old)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValidationError(field + " is required")
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return errs.NewValidationError(fmt.Sprintf("invalid %s %q, must be one of: %s", field, value, strings.Join(allowed, ", ")))
	}
	return nil
}

func validEmail(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	at := strings.Index(value, "@")
	if at < 1 || at == len(value)-1 || strings.ContainsAny(value, " \t") {
		return errs.NewValidationError("invalid " + field)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// matchesSearch is a case-insensitive substring match over fields. An empty
// term matches everything.
func matchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func filterSearch[T any](items []*T, term string, fields func(*T) []string) []*T {
	if strings.TrimSpace(term) == "" {
		return items
	}
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if matchesSearch(term, fields(it)...) {
			out = append(out, it)
		}
	}
	return out
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errs.NewValidationError(field + " must be a date (YYYY-MM-DD)")
}

func mediaType(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}
