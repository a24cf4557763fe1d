package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/helpers"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

const (
	shareholderFolder = "shareholders"
	teamFolder        = "team"
)

type shareholderSSStore interface {
	Create(ctx context.Context, sh *models.Shareholder) error
	Get(ctx context.Context, id string) (*models.Shareholder, error)
	Update(ctx context.Context, sh *models.Shareholder) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error)
}

type shareholderService struct {
	store shareholderSSStore
	media media
	now   func() time.Time
}

func NewShareholderService(store shareholderSSStore, delegate mediaDelegate, rec uploadRecorder) *shareholderService {
	return &shareholderService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

// Create stores a shareholder. A duplicate email (case-insensitive) is an
// AlreadyExistsError from the store.
func (s *shareholderService) Create(ctx context.Context, req dto.CreateShareholderRequest, photo *dto.FileUpload) (*models.Shareholder, error) {
	if req.Role == "" {
		req.Role = "member"
	}
	if err := firstError(
		required("name", req.Name),
		validEmail("email", req.Email),
		oneOf("role", req.Role, models.ShareholderRoles),
		nonNegative("shares", req.Shares),
	); err != nil {
		return nil, err
	}

	now := s.now()
	sh := &models.Shareholder{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      req.Role,
		Shares:    req.Shares,
		IsActive:  helpers.ValueOr(req.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if photo != nil {
		a, err := s.media.attachment(ctx, *photo, shareholderFolder)
		if err != nil {
			return nil, err
		}
		sh.Photo = a
	}

	if err := s.store.Create(ctx, sh); err != nil {
		s.media.removeAttachment(ctx, sh.Photo)
		return nil, err
	}
	logger.FromContext(ctx).Info("shareholder created", "shareholder_id", sh.ID)
	return sh, nil
}

func (s *shareholderService) Get(ctx context.Context, id string) (*models.Shareholder, error) {
	return s.store.Get(ctx, id)
}

func (s *shareholderService) List(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error) {
	if f.Role != "" {
		if err := oneOf("role", f.Role, models.ShareholderRoles); err != nil {
			return nil, err
		}
	}
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return filterSearch(list, f.Search, func(sh *models.Shareholder) []string {
		return []string{sh.Name, sh.Email, sh.Phone}
	}), nil
}

func (s *shareholderService) ListPublic(ctx context.Context, f dto.ShareholderFilter) ([]*models.Shareholder, error) {
	f.ActiveOnly = true
	return s.List(ctx, f)
}

func (s *shareholderService) Update(ctx context.Context, id string, req dto.UpdateShareholderRequest, photo *dto.FileUpload) (*models.Shareholder, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&sh.Name, req.Name)
	helpers.Assign(&sh.Email, req.Email)
	helpers.Assign(&sh.Phone, req.Phone)
	helpers.Assign(&sh.Address, req.Address)
	helpers.Assign(&sh.Role, req.Role)
	helpers.Assign(&sh.Shares, req.Shares)
	helpers.Assign(&sh.IsActive, req.IsActive)
	sh.Email = strings.TrimSpace(sh.Email)
	if err := firstError(
		required("name", sh.Name),
		validEmail("email", sh.Email),
		oneOf("role", sh.Role, models.ShareholderRoles),
		nonNegative("shares", sh.Shares),
	); err != nil {
		return nil, err
	}

	old, err := replaceAttachment(ctx, s.media, &sh.Photo, photo, req.RemovePhoto, shareholderFolder)
	if err != nil {
		return nil, err
	}
	sh.UpdatedAt = s.now()
	err = s.store.Update(ctx, sh)
	s.media.settle(ctx, sh.Photo, old, err)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *shareholderService) Delete(ctx context.Context, id string) error {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.removeAttachment(ctx, sh.Photo)
	logger.FromContext(ctx).Info("shareholder deleted", "shareholder_id", id)
	return nil
}

type teamTSStore interface {
	Create(ctx context.Context, m *models.TeamMember) error
	Get(ctx context.Context, id string) (*models.TeamMember, error)
	Update(ctx context.Context, m *models.TeamMember) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error)
}

type teamService struct {
	store teamTSStore
	media media
	now   func() time.Time
}

func NewTeamService(store teamTSStore, delegate mediaDelegate, rec uploadRecorder) *teamService {
	return &teamService{store: store, media: newMedia(delegate, rec), now: time.Now}
}

func (s *teamService) Create(ctx context.Context, req dto.CreateTeamMemberRequest, photo *dto.FileUpload) (*models.TeamMember, error) {
	if err := firstError(
		required("name", req.Name),
		oneOf("position", req.Position, models.TeamPositions),
	); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if err := validEmail("email", req.Email); err != nil {
			return nil, err
		}
	}

	now := s.now()
	m := &models.TeamMember{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Position:  req.Position,
		Email:     req.Email,
		Phone:     req.Phone,
		Bio:       req.Bio,
		Order:     req.Order,
		IsActive:  helpers.ValueOr(req.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if photo != nil {
		a, err := s.media.attachment(ctx, *photo, teamFolder)
		if err != nil {
			return nil, err
		}
		m.Photo = a
	}
	if err := s.store.Create(ctx, m); err != nil {
		s.media.removeAttachment(ctx, m.Photo)
		return nil, err
	}
	logger.FromContext(ctx).Info("team member created", "member_id", m.ID)
	return m, nil
}

func (s *teamService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	return s.store.Get(ctx, id)
}

// List returns members ordered by their display order, then name.
func (s *teamService) List(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error) {
	if f.Position != "" {
		if err := oneOf("position", f.Position, models.TeamPositions); err != nil {
			return nil, err
		}
	}
	list, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}
	list = filterSearch(list, f.Search, func(m *models.TeamMember) []string {
		return []string{m.Name, m.Email}
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Order != list[j].Order {
			return list[i].Order < list[j].Order
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (s *teamService) ListPublic(ctx context.Context, f dto.TeamFilter) ([]*models.TeamMember, error) {
	f.ActiveOnly = true
	return s.List(ctx, f)
}

func (s *teamService) Update(ctx context.Context, id string, req dto.UpdateTeamMemberRequest, photo *dto.FileUpload) (*models.TeamMember, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.Assign(&m.Name, req.Name)
	helpers.Assign(&m.Position, req.Position)
	helpers.Assign(&m.Email, req.Email)
	helpers.Assign(&m.Phone, req.Phone)
	helpers.Assign(&m.Bio, req.Bio)
	helpers.Assign(&m.Order, req.Order)
	helpers.Assign(&m.IsActive, req.IsActive)
	if err := firstError(
		required("name", m.Name),
		oneOf("position", m.Position, models.TeamPositions),
	); err != nil {
		return nil, err
	}

	old, err := replaceAttachment(ctx, s.media, &m.Photo, photo, req.RemovePhoto, teamFolder)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt = s.now()
	err = s.store.Update(ctx, m)
	s.media.settle(ctx, m.Photo, old, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.media.removeAttachment(ctx, m.Photo)
	logger.FromContext(ctx).Info("team member deleted", "member_id", id)
	return nil
}

// replaceAttachment uploads file into *field, or clears it when remove is
// set, and returns the previous value so the caller can clean it up once the
// document is saved.
func replaceAttachment(ctx context.Context, m media, field **models.Attachment, file *dto.FileUpload, remove bool, folder string) (*models.Attachment, error) {
	old := *field
	switch {
	case file != nil:
		a, err := m.attachment(ctx, *file, folder)
		if err != nil {
			return old, err
		}
		*field = a
	case remove:
		*field = nil
	}
	return old, nil
}

func nonNegative(field string, v int) error {
	if v < 0 {
		return errs.NewValidationError(field + " must not be negative")
	}
	return nil
}
