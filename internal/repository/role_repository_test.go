package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

func TestFindRoleByIDScansPermissions(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	now := time.Now()
	grants := []byte(`[{"module":"courses","actions":["*"]},{"module":"users","actions":["read","update"]}]`)
	rows := sqlmock.NewRows([]string{"id", "title", "permissions", "added_by", "created_at", "updated_at"}).
		AddRow("role-1", "Super Admin", grants, "system", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, permissions, added_by, created_at, updated_at FROM roles WHERE id = $1 LIMIT 1`)).
		WithArgs("role-1").
		WillReturnRows(rows)

	role, err := repo.FindByID(context.Background(), "role-1")
	require.NoError(t, err)
	assert.Equal(t, "Super Admin", role.Title)
	require.Len(t, role.Permissions, 2)
	assert.True(t, role.Permissions.Has("courses", "delete"))
	assert.True(t, role.Permissions.Has("users", "read"))
	assert.False(t, role.Permissions.Has("users", "delete"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRolePersistsGrants(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	mock.ExpectExec("UPDATE roles SET title").WillReturnResult(sqlmock.NewResult(0, 1))

	role := &models.Role{
		ID:    "role-2",
		Title: "Trainer",
		Permissions: models.PermissionSet{
			{Module: "courses", Actions: []string{"read"}},
		},
	}
	err := repo.Update(context.Background(), role)
	require.NoError(t, err)
	assert.False(t, role.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRoles(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "permissions", "added_by", "created_at", "updated_at"}).
		AddRow("role-1", "Super Admin", []byte(`[]`), "system", now, now).
		AddRow("role-2", "Trainer", []byte(`[{"module":"courses","actions":["read"]}]`), "role-1", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, permissions, added_by, created_at, updated_at FROM roles ORDER BY created_at ASC`)).
		WillReturnRows(rows)

	roles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.True(t, roles[1].Permissions.Has("courses", "read"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
