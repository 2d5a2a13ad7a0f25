package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type mockUserRepo struct {
	users       map[string]*models.User
	revoked     []string
	findByIDErr error
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.users == nil {
		m.users = make(map[string]*models.User)
	}
	if user.ID == "" {
		user.ID = "generated-id"
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *mockUserRepo) SetStatus(ctx context.Context, id string, status models.UserStatus) error {
	if user, ok := m.users[id]; ok {
		user.Status = status
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string, ts time.Time) error {
	m.revoked = append(m.revoked, userID)
	return nil
}

type mockAudit struct {
	entries []*models.AuditLog
}

func (m *mockAudit) Create(ctx context.Context, entry *models.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func activeUser(id, email string) *models.User {
	return &models.User{
		ID:            id,
		Email:         email,
		FullName:      "Test User",
		Phone:         "9840000000",
		DesignationID: "desig-1",
		RoleID:        "role-1",
		Status:        models.UserStatusActive,
	}
}

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := &mockUserRepo{}
	audit := &mockAudit{}
	svc := NewUserService(repo, audit, validator.New(), zap.NewNop())

	user, err := svc.Create(context.Background(), "actor-1", CreateUserRequest{
		Email:         "new@nunukkam.in",
		Password:      "secret123",
		FullName:      "New User",
		Phone:         "9840011111",
		DesignationID: "desig-1",
		RoleID:        "role-2",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	assert.Equal(t, models.UserStatusActive, user.Status)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUserCreate, audit.entries[0].Action)
}

func TestUserServiceCreateDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{"user-1": activeUser("user-1", "taken@nunukkam.in")}}
	svc := NewUserService(repo, &mockAudit{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "actor-1", CreateUserRequest{
		Email:         "taken@nunukkam.in",
		Password:      "secret123",
		FullName:      "Dup",
		Phone:         "9840022222",
		DesignationID: "desig-1",
		RoleID:        "role-2",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceDeactivateRevokesSessions(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*models.User{"user-1": activeUser("user-1", "a@nunukkam.in")}}
	audit := &mockAudit{}
	svc := NewUserService(repo, audit, validator.New(), zap.NewNop())

	err := svc.Deactivate(context.Background(), "actor-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusDeactivated, repo.users["user-1"].Status)
	assert.Contains(t, repo.revoked, "user-1")
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionUserDeactivate, audit.entries[0].Action)
}

func TestUserServiceDeactivateTwiceConflicts(t *testing.T) {
	user := activeUser("user-1", "a@nunukkam.in")
	user.Status = models.UserStatusDeactivated
	repo := &mockUserRepo{users: map[string]*models.User{"user-1": user}}
	svc := NewUserService(repo, &mockAudit{}, validator.New(), zap.NewNop())

	err := svc.Deactivate(context.Background(), "actor-1", "user-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUserServiceReactivateRestoresRecord(t *testing.T) {
	user := activeUser("user-1", "a@nunukkam.in")
	user.Status = models.UserStatusDeactivated
	repo := &mockUserRepo{users: map[string]*models.User{"user-1": user}}
	svc := NewUserService(repo, &mockAudit{}, validator.New(), zap.NewNop())

	err := svc.Reactivate(context.Background(), "actor-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, repo.users["user-1"].Status)
	assert.Equal(t, "a@nunukkam.in", repo.users["user-1"].Email)
}
