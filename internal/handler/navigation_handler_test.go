package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/navigation"
	"github.com/nunukkam/admin-portal-api/internal/store"
)

type responseEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func seededNavigationHandler() *NavigationHandler {
	st := store.New()
	store.Seed(st)
	return NewNavigationHandler(navigation.NewResolver(st, zap.NewNop()))
}

func TestNavigationBreadcrumbsResolvesEntities(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := seededNavigationHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/navigation/breadcrumbs?path=/courses/edit/course-1", nil)

	handler.Breadcrumbs(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	var trail []navigation.Crumb
	require.NoError(t, json.Unmarshal(envelope.Data, &trail))
	require.NotEmpty(t, trail)
	assert.Equal(t, "Home", trail[0].Label)
	assert.Equal(t, "Campus to Corporate", trail[len(trail)-1].Label)
}

func TestNavigationSearchReturnsResults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := seededNavigationHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/navigation/search?q=communication", nil)

	handler.Search(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	var results []navigation.SearchResult
	require.NoError(t, json.Unmarshal(envelope.Data, &results))
	require.NotEmpty(t, results)
	assert.Equal(t, navigation.CategoryCourse, results[0].Category)
}

func TestNavigationSearchBlankQueryReturnsEmptyList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := seededNavigationHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/navigation/search?q=%20%20", nil)

	handler.Search(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	var results []navigation.SearchResult
	require.NoError(t, json.Unmarshal(envelope.Data, &results))
	assert.Empty(t, results)
}
