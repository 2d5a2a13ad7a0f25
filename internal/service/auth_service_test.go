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

type mockAuthUserRepo struct {
	users   map[string]*models.User
	tokens  map[string]*models.RefreshToken
	revoked []string
}

func newMockAuthUserRepo() *mockAuthUserRepo {
	return &mockAuthUserRepo{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (m *mockAuthUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &ts
	}
	return nil
}

func (m *mockAuthUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockAuthUserRepo) RevokeUserRefreshTokens(ctx context.Context, userID string, ts time.Time) error {
	m.revoked = append(m.revoked, userID)
	for _, tok := range m.tokens {
		if tok.UserID == userID {
			tok.Revoked = true
		}
	}
	return nil
}

func (m *mockAuthUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	cp := *token
	m.tokens[token.Token] = &cp
	return nil
}

func (m *mockAuthUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if tok, ok := m.tokens[token]; ok {
		cp := *tok
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, tok := range m.tokens {
		if tok.ID == id {
			tok.Revoked = true
			return nil
		}
	}
	return sql.ErrNoRows
}

type mockAuthRoleRepo struct {
	roles map[string]*models.Role
}

func (m *mockAuthRoleRepo) FindByID(ctx context.Context, id string) (*models.Role, error) {
	if r, ok := m.roles[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "nunukkam-admin-api",
		Audience:           []string{"nunukkam-admin-portal"},
	}
}

func seedAuthUser(t *testing.T, repo *mockAuthUserRepo, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:           "user-1",
		Email:        "priya@nunukkam.in",
		PasswordHash: string(hash),
		FullName:     "Priya Venkatesan",
		RoleID:       "role-1",
		Status:       models.UserStatusActive,
	}
	repo.users[user.ID] = user
	return user
}

func TestAuthServiceLoginIssuesTokensWithGrants(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	roles := &mockAuthRoleRepo{roles: map[string]*models.Role{
		"role-1": {ID: "role-1", Title: "Admin", Permissions: models.PermissionSet{
			{Module: "users", Actions: []string{models.ActionWildcard}},
		}},
	}}
	audit := &mockAudit{}
	svc := NewAuthService(repo, roles, audit, validator.New(), zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.True(t, claims.Permissions.Has("users", "delete"))

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogin, audit.entries[0].Action)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginDeactivatedAccount(t *testing.T) {
	repo := newMockAuthUserRepo()
	user := seedAuthUser(t, repo, "secret123")
	user.Status = models.UserStatusDeactivated
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceSingleSessionRevokesPrevious(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	cfg := testAuthConfig()
	cfg.SingleSession = true
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), cfg)

	first, err := svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "secret123"})
	require.NoError(t, err)

	assert.True(t, repo.tokens[first.RefreshToken].Revoked)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "priya@nunukkam.in", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.True(t, repo.tokens[login.RefreshToken].Revoked)

	// the used token cannot be replayed
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRefreshExpiredToken(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	repo.tokens["stale"] = &models.RefreshToken{
		ID:        "tok-1",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: "stale"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLogoutRejectsForeignToken(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	repo.tokens["other"] = &models.RefreshToken{
		ID:        "tok-2",
		UserID:    "someone-else",
		Token:     "other",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.Logout(context.Background(), "other", "user-1", models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "fresh-secret",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["user-1"].PasswordHash), []byte("fresh-secret")))
	assert.Contains(t, repo.revoked, "user-1")
}

func TestAuthServiceChangePasswordWrongOld(t *testing.T) {
	repo := newMockAuthUserRepo()
	seedAuthUser(t, repo, "secret123")
	svc := NewAuthService(repo, &mockAuthRoleRepo{}, &mockAudit{}, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "user-1", models.ChangePasswordRequest{
		OldPassword: "nope",
		NewPassword: "fresh-secret",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
