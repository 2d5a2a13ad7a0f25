package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// RequirePermission enforces a module/action grant from the token claims.
// The grants travel inside the access token, so no database lookup happens
// here; permission edits take effect when the user's token is reissued.
func RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !claims.Permissions.Has(module, action) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "missing permission: "+module+"."+action))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSelfOrPermission allows the request when the :id path parameter
// matches the caller, falling back to the module/action grant otherwise.
func RequireSelfOrPermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if targetID := c.Param("id"); targetID != "" && targetID == claims.UserID {
			c.Next()
			return
		}

		if !claims.Permissions.Has(module, action) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "missing permission: "+module+"."+action))
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentClaims returns the JWT claims stored by the JWT middleware.
func CurrentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
