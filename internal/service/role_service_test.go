package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type mockRoleRepo struct {
	roles     map[string]*models.Role
	updateErr error
}

func (m *mockRoleRepo) List(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	for _, r := range m.roles {
		roles = append(roles, *r)
	}
	return roles, nil
}

func (m *mockRoleRepo) FindByID(ctx context.Context, id string) (*models.Role, error) {
	if role, ok := m.roles[id]; ok {
		cp := *role
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRoleRepo) Create(ctx context.Context, role *models.Role) error {
	if m.roles == nil {
		m.roles = make(map[string]*models.Role)
	}
	if role.ID == "" {
		role.ID = "generated-role"
	}
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *mockRoleRepo) Update(ctx context.Context, role *models.Role) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *role
	m.roles[role.ID] = &cp
	return nil
}

func (m *mockRoleRepo) Delete(ctx context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

type mockRoleUserCounter struct {
	count int
	err   error
}

func (m *mockRoleUserCounter) CountByRole(ctx context.Context, roleID string) (int, error) {
	return m.count, m.err
}

func trainerRole() *models.Role {
	return &models.Role{
		ID:    "role-1",
		Title: "Trainer",
		Permissions: models.PermissionSet{
			{Module: "courses", Actions: []string{"view", "edit"}},
			{Module: "colleges", Actions: []string{models.ActionWildcard}},
		},
	}
}

func newRoleService(repo *mockRoleRepo, counter *mockRoleUserCounter, audit *mockAudit) *RoleService {
	return NewRoleService(repo, counter, audit, validator.New(), zap.NewNop())
}

func TestRoleServiceCreateRejectsEmptyGrants(t *testing.T) {
	svc := newRoleService(&mockRoleRepo{}, &mockRoleUserCounter{}, &mockAudit{})

	_, err := svc.Create(context.Background(), "actor-1", CreateRoleRequest{
		Title:       "Empty",
		Permissions: models.PermissionSet{},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRoleServiceCreateRejectsBlankModule(t *testing.T) {
	svc := newRoleService(&mockRoleRepo{}, &mockRoleUserCounter{}, &mockAudit{})

	_, err := svc.Create(context.Background(), "actor-1", CreateRoleRequest{
		Title:       "Broken",
		Permissions: models.PermissionSet{{Module: "", Actions: []string{"view"}}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRoleServiceCreatePersistsGrants(t *testing.T) {
	repo := &mockRoleRepo{}
	audit := &mockAudit{}
	svc := newRoleService(repo, &mockRoleUserCounter{}, audit)

	role, err := svc.Create(context.Background(), "actor-1", CreateRoleRequest{
		Title:       "Content Admin",
		Permissions: models.PermissionSet{{Module: "courses", Actions: []string{"view", "edit"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "actor-1", role.AddedBy)
	assert.True(t, repo.roles[role.ID].Permissions.Has("courses", "edit"))
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionRoleCreate, audit.entries[0].Action)
}

func TestRoleServiceTogglePermission(t *testing.T) {
	tests := []struct {
		name   string
		module string
		action string
		check  func(t *testing.T, p models.PermissionSet)
	}{
		{
			name:   "adds action to new module",
			module: "reports",
			action: "view",
			check: func(t *testing.T, p models.PermissionSet) {
				assert.True(t, p.Has("reports", "view"))
				assert.False(t, p.Has("reports", "edit"))
			},
		},
		{
			name:   "removes existing action",
			module: "courses",
			action: "edit",
			check: func(t *testing.T, p models.PermissionSet) {
				assert.True(t, p.Has("courses", "view"))
				assert.False(t, p.Has("courses", "edit"))
			},
		},
		{
			name:   "wildcard replaces partial grants",
			module: "courses",
			action: models.ActionWildcard,
			check: func(t *testing.T, p models.PermissionSet) {
				assert.True(t, p.Has("courses", "delete"))
				assert.True(t, p.Has("courses", "view"))
			},
		},
		{
			name:   "wildcard off drops module",
			module: "colleges",
			action: models.ActionWildcard,
			check: func(t *testing.T, p models.PermissionSet) {
				assert.False(t, p.Has("colleges", "view"))
			},
		},
		{
			name:   "specific action under wildcard narrows grant",
			module: "colleges",
			action: "view",
			check: func(t *testing.T, p models.PermissionSet) {
				assert.True(t, p.Has("colleges", "view"))
				assert.False(t, p.Has("colleges", "edit"))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRoleRepo{roles: map[string]*models.Role{"role-1": trainerRole()}}
			audit := &mockAudit{}
			svc := newRoleService(repo, &mockRoleUserCounter{}, audit)

			role, err := svc.TogglePermission(context.Background(), "actor-1", "role-1", TogglePermissionRequest{
				Module: tc.module,
				Action: tc.action,
			})
			require.NoError(t, err)
			tc.check(t, role.Permissions)
			tc.check(t, repo.roles["role-1"].Permissions)
			require.Len(t, audit.entries, 1)
			assert.Equal(t, models.AuditActionPermissionsUpdate, audit.entries[0].Action)
		})
	}
}

func TestRoleServiceTogglePermissionAuditsPriorGrants(t *testing.T) {
	repo := &mockRoleRepo{roles: map[string]*models.Role{"role-1": trainerRole()}}
	audit := &mockAudit{}
	svc := newRoleService(repo, &mockRoleUserCounter{}, audit)

	updated, err := svc.TogglePermission(context.Background(), "actor-1", "role-1", TogglePermissionRequest{
		Module: "courses",
		Action: "view",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"edit"}, updated.Permissions[0].Actions)

	require.Len(t, audit.entries, 1)
	var before models.Role
	require.NoError(t, json.Unmarshal(audit.entries[0].OldValues, &before))
	require.NotEmpty(t, before.Permissions)
	assert.Equal(t, []string{"view", "edit"}, before.Permissions[0].Actions)

	var after models.Role
	require.NoError(t, json.Unmarshal(audit.entries[0].NewValues, &after))
	assert.Equal(t, []string{"edit"}, after.Permissions[0].Actions)
}

func TestRoleServiceTogglePermissionUnknownRole(t *testing.T) {
	svc := newRoleService(&mockRoleRepo{}, &mockRoleUserCounter{}, &mockAudit{})

	_, err := svc.TogglePermission(context.Background(), "actor-1", "missing", TogglePermissionRequest{
		Module: "courses",
		Action: "view",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRoleServiceDeleteBlockedWhileAssigned(t *testing.T) {
	repo := &mockRoleRepo{roles: map[string]*models.Role{"role-1": trainerRole()}}
	svc := newRoleService(repo, &mockRoleUserCounter{count: 3}, &mockAudit{})

	err := svc.Delete(context.Background(), "actor-1", "role-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReferenced.Code, appErrors.FromError(err).Code)
	assert.Contains(t, repo.roles, "role-1")
}

func TestRoleServiceDeleteUnreferenced(t *testing.T) {
	repo := &mockRoleRepo{roles: map[string]*models.Role{"role-1": trainerRole()}}
	audit := &mockAudit{}
	svc := newRoleService(repo, &mockRoleUserCounter{count: 0}, audit)

	err := svc.Delete(context.Background(), "actor-1", "role-1")
	require.NoError(t, err)
	assert.NotContains(t, repo.roles, "role-1")
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionRoleDelete, audit.entries[0].Action)
}
