package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type designationRepository interface {
	List(ctx context.Context) ([]models.Designation, error)
	FindByID(ctx context.Context, id string) (*models.Designation, error)
	Create(ctx context.Context, d *models.Designation) error
	Update(ctx context.Context, d *models.Designation) error
	Delete(ctx context.Context, id string) error
}

type designationUserCounter interface {
	CountActiveByDesignation(ctx context.Context, designationID string) (int, error)
}

// DesignationRequest is the payload for creating or renaming a designation.
type DesignationRequest struct {
	Title string `json:"title" validate:"required"`
}

// DesignationService provides designation management. A designation cannot
// be removed while an active user still carries it; deactivated accounts do
// not block removal.
type DesignationService struct {
	repo      designationRepository
	users     designationUserCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDesignationService constructs a DesignationService.
func NewDesignationService(repo designationRepository, users designationUserCounter, validate *validator.Validate, logger *zap.Logger) *DesignationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DesignationService{repo: repo, users: users, validator: validate, logger: logger}
}

// List returns all designations.
func (s *DesignationService) List(ctx context.Context) ([]models.Designation, error) {
	designations, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list designations")
	}
	return designations, nil
}

// Create adds a designation.
func (s *DesignationService) Create(ctx context.Context, req DesignationRequest) (*models.Designation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "designation title is required")
	}
	d := &models.Designation{Title: req.Title}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create designation")
	}
	return d, nil
}

// Update renames a designation.
func (s *DesignationService) Update(ctx context.Context, id string, req DesignationRequest) (*models.Designation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "designation title is required")
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "designation not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load designation")
	}
	d.Title = req.Title
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update designation")
	}
	return d, nil
}

// Delete removes a designation unless an active user references it.
func (s *DesignationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "designation not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load designation")
	}

	count, err := s.users.CountActiveByDesignation(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check designation references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrReferenced, "designation is assigned to active users and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete designation")
	}
	return nil
}
