package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/navigation"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// NavigationHandler serves breadcrumb resolution and cross-entity search for
// the portal shell.
type NavigationHandler struct {
	resolver *navigation.Resolver
}

// NewNavigationHandler constructs NavigationHandler.
func NewNavigationHandler(resolver *navigation.Resolver) *NavigationHandler {
	return &NavigationHandler{resolver: resolver}
}

// Breadcrumbs godoc
// @Summary Resolve a route path into a breadcrumb trail
// @Tags Navigation
// @Produce json
// @Param path query string true "Route path, e.g. /courses/edit/course-1"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /navigation/breadcrumbs [get]
func (h *NavigationHandler) Breadcrumbs(c *gin.Context) {
	path := c.Query("path")
	trail := h.resolver.Resolve(path)
	response.JSON(c, http.StatusOK, trail, nil)
}

// Search godoc
// @Summary Search courses, chapters, colleges, users and skills
// @Tags Navigation
// @Produce json
// @Param q query string false "Query string; blank yields no results"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /navigation/search [get]
func (h *NavigationHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	results := h.resolver.Search(query)
	if results == nil {
		results = []navigation.SearchResult{}
	}
	response.JSON(c, http.StatusOK, results, nil)
}
