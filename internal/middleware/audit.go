package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// AuditWriter persists audit log entries.
type AuditWriter interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// Audit records an audit log entry after successful mutating requests on
// routes that do not audit inside their service. Reads pass through
// unlogged; the action is derived from the HTTP method, e.g. COURSE_CREATE.
func Audit(repo AuditWriter, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		verb := auditVerb(c.Request.Method)
		if verb == "" {
			c.Next()
			return
		}

		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if claims, ok := CurrentClaims(c); ok {
			userID = &claims.UserID
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		_ = repo.Create(c.Request.Context(), &models.AuditLog{
			UserID:    userID,
			Action:    strings.ToUpper(strings.TrimSuffix(resource, "s")) + "_" + verb,
			Resource:  resource,
			NewValues: body,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
}

func auditVerb(method string) string {
	switch method {
	case http.MethodPost:
		return "CREATE"
	case http.MethodPut, http.MethodPatch:
		return "UPDATE"
	case http.MethodDelete:
		return "DELETE"
	default:
		return ""
	}
}
