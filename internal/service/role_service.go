package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type roleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	FindByID(ctx context.Context, id string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
}

type roleUserCounter interface {
	CountByRole(ctx context.Context, roleID string) (int, error)
}

// CreateRoleRequest is the payload for adding a role. A role submission is
// only valid once at least one module grant exists.
type CreateRoleRequest struct {
	Title       string               `json:"title" validate:"required"`
	Permissions models.PermissionSet `json:"permissions" validate:"required,min=1"`
}

// UpdateRoleRequest is the payload for editing a role.
type UpdateRoleRequest struct {
	Title       string               `json:"title" validate:"required"`
	Permissions models.PermissionSet `json:"permissions" validate:"required,min=1"`
}

// TogglePermissionRequest flips one action on a role's grant for a module.
type TogglePermissionRequest struct {
	Module string `json:"module" validate:"required"`
	Action string `json:"action" validate:"required"`
}

// RoleService provides role and permission management use cases.
type RoleService struct {
	repo      roleRepository
	users     roleUserCounter
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoleService constructs a RoleService.
func NewRoleService(repo roleRepository, users roleUserCounter, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *RoleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RoleService{repo: repo, users: users, audit: audit, validator: validate, logger: logger}
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return roles, nil
}

// Get returns a single role by id.
func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "role not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load role")
	}
	return role, nil
}

// Create adds a role with its initial grant set.
func (s *RoleService) Create(ctx context.Context, actorID string, req CreateRoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role needs a title and at least one permission")
	}
	if err := validateGrants(req.Permissions); err != nil {
		return nil, err
	}

	role := &models.Role{
		Title:       req.Title,
		Permissions: req.Permissions,
		AddedBy:     actorID,
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create role")
	}

	s.auditRole(ctx, actorID, models.AuditActionRoleCreate, role.ID, nil, role)
	return role, nil
}

// Update replaces a role's title and full grant set.
func (s *RoleService) Update(ctx context.Context, actorID, id string, req UpdateRoleRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role needs a title and at least one permission")
	}
	if err := validateGrants(req.Permissions); err != nil {
		return nil, err
	}

	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *role
	role.Title = req.Title
	role.Permissions = req.Permissions
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}

	s.auditRole(ctx, actorID, models.AuditActionRoleUpdate, role.ID, &before, role)
	return role, nil
}

// TogglePermission flips a single action grant on a role. Toggling the
// wildcard on replaces any partial grants for the module; toggling it off
// drops the module entirely. Removing a module's last specific action also
// drops the module entry.
func (s *RoleService) TogglePermission(ctx context.Context, actorID, id string, req TogglePermissionRequest) (*models.Role, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "module and action are required")
	}

	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *role
	before.Permissions = role.Permissions.Clone()
	role.Permissions = role.Permissions.Toggle(req.Module, req.Action)
	if err := s.repo.Update(ctx, role); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role permissions")
	}

	s.auditRole(ctx, actorID, models.AuditActionPermissionsUpdate, role.ID, &before, role)
	return role, nil
}

// Delete removes a role unless any user still references it.
func (s *RoleService) Delete(ctx context.Context, actorID, id string) error {
	role, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check role references")
	}
	if count > 0 {
		return appErrors.Clone(appErrors.ErrReferenced, "role is assigned to users and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete role")
	}

	s.auditRole(ctx, actorID, models.AuditActionRoleDelete, id, role, nil)
	return nil
}

// validateGrants rejects grant entries with a blank module or an empty
// action list. An empty list never persists; the entry is removed instead.
func validateGrants(grants models.PermissionSet) error {
	for _, g := range grants {
		if g.Module == "" || len(g.Actions) == 0 {
			return appErrors.Clone(appErrors.ErrValidation, "each grant needs a module and at least one action")
		}
	}
	return nil
}

func (s *RoleService) auditRole(ctx context.Context, actorID, action, resourceID string, before, after interface{}) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "roles",
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
