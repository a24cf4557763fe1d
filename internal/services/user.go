package services

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/sahakari-backend/internal/dto"
	"github.com/GregMSThompson/sahakari-backend/internal/errs"
	"github.com/GregMSThompson/sahakari-backend/internal/models"
	"github.com/GregMSThompson/sahakari-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	DeleteUser(ctx context.Context, uid string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// userAuthAdmin is the subset of the Firebase Auth admin client used to
// provision back office accounts.
type userAuthAdmin interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error
	DeleteUser(ctx context.Context, uid string) error
}

type userService struct {
	Store userUSStore
	Auth  userAuthAdmin
	now   func() time.Time
}

func NewUserService(store userUSStore, authAdmin userAuthAdmin) *userService {
	return &userService{
		Store: store,
		Auth:  authAdmin,
		now:   time.Now,
	}
}

// CreateUser creates the Firebase account, sets its role claim and stores
// the profile. The account is removed again if a later step fails.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	log := logger.FromContext(ctx)

	if err := firstError(
		validEmail("email", req.Email),
		oneOf("role", req.Role, models.UserRoles),
	); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, errs.NewValidationError("password must be at least 8 characters")
	}

	params := (&auth.UserToCreate{}).Email(req.Email).Password(req.Password)
	if req.DisplayName != "" {
		params = params.DisplayName(req.DisplayName)
	}
	record, err := s.Auth.CreateUser(ctx, params)
	if auth.IsEmailAlreadyExists(err) {
		return nil, errs.NewAlreadyExistsError("a user with this email already exists")
	}
	if err != nil {
		log.Error("failed to create firebase user", "error", err)
		return nil, errs.NewExternalServiceError("firebase auth", "failed to create user", false, err)
	}

	rollback := func() {
		if derr := s.Auth.DeleteUser(ctx, record.UID); derr != nil {
			log.Error("failed to roll back firebase user", "uid", record.UID, "error", derr)
		}
	}

	if err := s.Auth.SetCustomUserClaims(ctx, record.UID, map[string]interface{}{"role": req.Role}); err != nil {
		rollback()
		return nil, errs.NewExternalServiceError("firebase auth", "failed to set role", false, err)
	}

	now := s.now()
	user := &models.User{
		UID:         record.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user in store", "error", err)
		rollback()
		return nil, err
	}

	log.Info("user created successfully", "new_uid", user.UID, "role", user.Role)
	log.Debug("user created with full details", "user", user)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Store.ListUsers(ctx)
}

func (s *userService) UpdateRole(ctx context.Context, actorUID, uid, role string) (*models.User, error) {
	if err := oneOf("role", role, models.UserRoles); err != nil {
		return nil, err
	}
	if actorUID == uid && role != models.RoleAdmin {
		return nil, errs.NewValidationError("you cannot remove your own admin role")
	}
	user, err := s.Store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.Auth.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role}); err != nil {
		return nil, errs.NewExternalServiceError("firebase auth", "failed to set role", false, err)
	}
	user.Role = role
	user.UpdatedAt = s.now()
	if err := s.Store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("user role updated", "target_uid", uid, "role", role)
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorUID, uid string) error {
	if actorUID == uid {
		return errs.NewValidationError("you cannot delete your own account")
	}
	if _, err := s.Store.GetUser(ctx, uid); err != nil {
		return err
	}
	if err := s.Auth.DeleteUser(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return errs.NewExternalServiceError("firebase auth", "failed to delete user", false, err)
	}
	if err := s.Store.DeleteUser(ctx, uid); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("user deleted", "target_uid", uid)
	return nil
}
