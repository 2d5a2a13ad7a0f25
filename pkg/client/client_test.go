package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func writeEnvelopeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, opts...)
	return c, srv
}

func TestLoginStoresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "priya@nunukkam.in", body["email"])
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"expires_in":    900,
		})
	})
	c, _ := newTestClient(t, mux)

	res, err := c.Auth().Login(context.Background(), "priya@nunukkam.in", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-1", res.AccessToken)

	access, refresh := c.Session()
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/designations", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, []map[string]string{{"id": "des-1", "title": "Trainer"}})
	})
	c, _ := newTestClient(t, mux)
	c.SetSession("access-token", "refresh-token")

	designations, err := c.Designations().List(context.Background())
	require.NoError(t, err)
	require.Len(t, designations, 1)
	assert.Equal(t, "Bearer access-token", gotAuth)
}

func TestRefreshAndReplayOnUnauthorized(t *testing.T) {
	var listCalls, refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/roles", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&listCalls, 1) == 1 {
			writeEnvelopeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
			return
		}
		assert.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, []map[string]string{{"id": "role-1", "title": "Trainer"}})
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refresh_token"])
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"access_token":  "access-2",
			"refresh_token": "refresh-2",
			"expires_in":    900,
		})
	})
	c, _ := newTestClient(t, mux)
	c.SetSession("access-1", "refresh-1")

	roles, err := c.Roles().List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.EqualValues(t, 2, atomic.LoadInt32(&listCalls))
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))

	access, refresh := c.Session()
	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-2", refresh)
}

func TestFailedRefreshExpiresSession(t *testing.T) {
	var expired int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/roles", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "refresh token revoked")
	})
	c, _ := newTestClient(t, mux, OnSessionExpired(func() {
		atomic.AddInt32(&expired, 1)
	}))
	c.SetSession("access-1", "refresh-1")

	_, err := c.Roles().List(context.Background())
	require.Error(t, err)

	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	access, refresh := c.Session()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.EqualValues(t, 1, atomic.LoadInt32(&expired))
}

func TestUnauthenticatedClientDoesNotAttemptRefresh(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/roles", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing token")
	})
	mux.HandleFunc("/api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		writeEnvelopeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no token")
	})
	c, _ := newTestClient(t, mux)

	_, err := c.Roles().List(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls))
}

func TestEnvelopeErrorBecomesTypedError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/roles/role-1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelopeError(w, http.StatusConflict, "REFERENCED", "role has active users")
	})
	c, _ := newTestClient(t, mux)
	c.SetSession("access-1", "refresh-1")

	err := c.Roles().Delete(context.Background(), "role-1")
	require.Error(t, err)

	appErr, ok := err.(*appErrors.Error)
	require.True(t, ok)
	assert.Equal(t, "REFERENCED", appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Contains(t, appErr.Message, "active users")
}

func TestPaginationExtractedFromEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]string{{"id": "user-1"}},
			"pagination": map[string]interface{}{
				"page": 2, "page_size": 10, "total_count": 25,
			},
		})
	})
	c, _ := newTestClient(t, mux)
	c.SetSession("access-1", "refresh-1")

	users, pagination, err := c.Users().List(context.Background(), models.UserFilter{Page: 2, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 25, pagination.TotalCount)
}

func TestSearchSendsQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/navigation/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "communication", r.URL.Query().Get("q"))
		writeEnvelope(w, http.StatusOK, []map[string]string{
			{"id": "course-1", "title": "Campus to Corporate", "category": "course", "path": "/courses/edit/course-1"},
		})
	})
	c, _ := newTestClient(t, mux)
	c.SetSession("access-1", "refresh-1")

	results, err := c.Navigation().Search(context.Background(), "communication")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].Path, "/courses/"))
}
