package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SetStatus(ctx context.Context, id string, status models.UserStatus) error
	RevokeUserRefreshTokens(ctx context.Context, userID string, ts time.Time) error
}

// CreateUserRequest is the payload for adding a portal user.
type CreateUserRequest struct {
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	FullName           string  `json:"full_name" validate:"required"`
	Phone              string  `json:"phone" validate:"required"`
	DesignationID      string  `json:"designation_id" validate:"required"`
	RoleID             string  `json:"role_id" validate:"required"`
	ReportingManagerID *string `json:"reporting_manager_id"`
}

// UpdateUserRequest is the payload for editing a portal user.
type UpdateUserRequest struct {
	FullName           string  `json:"full_name" validate:"required"`
	Phone              string  `json:"phone" validate:"required"`
	DesignationID      string  `json:"designation_id" validate:"required"`
	RoleID             string  `json:"role_id" validate:"required"`
	ReportingManagerID *string `json:"reporting_manager_id"`
}

// UserService provides user management use cases. Deletion is soft: the
// account flips to deactivated, keeps its history and can be reactivated.
type UserService struct {
	repo      userRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns users matching the filter with pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return users, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// Create adds a new user. Email addresses are unique.
func (s *UserService) Create(ctx context.Context, actorID string, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already in use")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:              req.Email,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Phone:              req.Phone,
		DesignationID:      req.DesignationID,
		RoleID:             req.RoleID,
		ReportingManagerID: req.ReportingManagerID,
		Status:             models.UserStatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.auditChange(ctx, actorID, models.AuditActionUserCreate, user.ID, nil, user)
	return user, nil
}

// Update edits an existing user's profile, designation and role.
func (s *UserService) Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *user
	user.FullName = req.FullName
	user.Phone = req.Phone
	user.DesignationID = req.DesignationID
	user.RoleID = req.RoleID
	user.ReportingManagerID = req.ReportingManagerID

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	s.auditChange(ctx, actorID, models.AuditActionUserUpdate, user.ID, &before, user)
	return user, nil
}

// Deactivate soft-deletes a user and revokes their sessions.
func (s *UserService) Deactivate(ctx context.Context, actorID, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !user.Active() {
		return appErrors.Clone(appErrors.ErrConflict, "account is already deactivated")
	}

	if err := s.repo.SetStatus(ctx, id, models.UserStatusDeactivated); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate user")
	}
	if err := s.repo.RevokeUserRefreshTokens(ctx, id, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to revoke sessions on deactivation", zap.String("user_id", id), zap.Error(err))
	}

	s.auditChange(ctx, actorID, models.AuditActionUserDeactivate, id, user, nil)
	return nil
}

// Reactivate restores a deactivated account with its record intact.
func (s *UserService) Reactivate(ctx context.Context, actorID, id string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Active() {
		return appErrors.Clone(appErrors.ErrConflict, "account is already active")
	}

	if err := s.repo.SetStatus(ctx, id, models.UserStatusActive); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reactivate user")
	}

	s.auditChange(ctx, actorID, models.AuditActionUserReactivate, id, nil, user)
	return nil
}

func (s *UserService) auditChange(ctx context.Context, actorID, action, resourceID string, before, after interface{}) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "users",
		ResourceID: &resourceID,
	}
	if actorID != "" {
		entry.UserID = &actorID
	}
	if before != nil {
		if raw, err := json.Marshal(before); err == nil {
			entry.OldValues = raw
		}
	}
	if after != nil {
		if raw, err := json.Marshal(after); err == nil {
			entry.NewValues = raw
		}
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
