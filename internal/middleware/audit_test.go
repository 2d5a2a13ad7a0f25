package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

type recordingAuditWriter struct {
	entries []*models.AuditLog
}

func (w *recordingAuditWriter) Create(ctx context.Context, entry *models.AuditLog) error {
	w.entries = append(w.entries, entry)
	return nil
}

func auditRouter(writer *recordingAuditWriter, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/courses")
	group.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, adminClaims())
		c.Next()
	}, Audit(writer, "courses"))
	handle := func(c *gin.Context) { c.Status(status) }
	group.GET("", handle)
	group.POST("", handle)
	group.DELETE("/:id", handle)
	return r
}

func TestAuditRecordsMutation(t *testing.T) {
	writer := &recordingAuditWriter{}
	r := auditRouter(writer, http.StatusCreated)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses", nil))

	require.Len(t, writer.entries, 1)
	entry := writer.entries[0]
	assert.Equal(t, "COURSE_CREATE", entry.Action)
	assert.Equal(t, "courses", entry.Resource)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "user-1", *entry.UserID)
	assert.Contains(t, string(entry.NewValues), "/courses")
}

func TestAuditDerivesActionFromMethod(t *testing.T) {
	writer := &recordingAuditWriter{}
	r := auditRouter(writer, http.StatusNoContent)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/course-1", nil))

	require.Len(t, writer.entries, 1)
	assert.Equal(t, "COURSE_DELETE", writer.entries[0].Action)
}

func TestAuditSkipsReads(t *testing.T) {
	writer := &recordingAuditWriter{}
	r := auditRouter(writer, http.StatusOK)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	assert.Empty(t, writer.entries)
}

func TestAuditSkipsFailedRequests(t *testing.T) {
	writer := &recordingAuditWriter{}
	r := auditRouter(writer, http.StatusConflict)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses", nil))

	assert.Empty(t, writer.entries)
}
