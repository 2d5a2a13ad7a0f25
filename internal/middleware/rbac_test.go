package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

func permissionRouter(claims *models.JWTClaims, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded/:id", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
		c.Next()
	}, guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{
		UserID: "user-1",
		Permissions: models.PermissionSet{
			{Module: "users", Actions: []string{"view"}},
			{Module: "roles", Actions: []string{models.ActionWildcard}},
		},
	}
}

func TestRequirePermissionAllowsGrantedAction(t *testing.T) {
	r := permissionRouter(adminClaims(), RequirePermission("users", "view"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/other", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionWildcardCoversAction(t *testing.T) {
	r := permissionRouter(adminClaims(), RequirePermission("roles", "delete"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/other", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionDeniesMissingGrant(t *testing.T) {
	r := permissionRouter(adminClaims(), RequirePermission("users", "delete"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/other", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionNoClaims(t *testing.T) {
	r := permissionRouter(nil, RequirePermission("users", "view"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/other", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSelfOrPermissionMatchesSelf(t *testing.T) {
	r := permissionRouter(adminClaims(), RequireSelfOrPermission("users", "delete"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/user-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSelfOrPermissionDeniesOtherWithoutGrant(t *testing.T) {
	r := permissionRouter(adminClaims(), RequireSelfOrPermission("users", "delete"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded/user-2", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
