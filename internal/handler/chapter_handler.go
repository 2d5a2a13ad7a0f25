package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/service"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// ChapterHandler exposes chapter and assessment endpoints.
type ChapterHandler struct {
	chapters *service.ChapterService
}

// NewChapterHandler constructs ChapterHandler.
func NewChapterHandler(chapters *service.ChapterService) *ChapterHandler {
	return &ChapterHandler{chapters: chapters}
}

// List godoc
// @Summary List chapters
// @Tags Chapters
// @Produce json
// @Param search query string false "Search by name"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters [get]
func (h *ChapterHandler) List(c *gin.Context) {
	chapters, err := h.chapters.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chapters, nil)
}

// Get godoc
// @Summary Get chapter detail with assessments
// @Tags Chapters
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters/{id} [get]
func (h *ChapterHandler) Get(c *gin.Context) {
	chapter, err := h.chapters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chapter, nil)
}

// Create godoc
// @Summary Create chapter
// @Tags Chapters
// @Accept json
// @Produce json
// @Param payload body service.ChapterRequest true "Chapter payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters [post]
func (h *ChapterHandler) Create(c *gin.Context) {
	var req service.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	chapter, err := h.chapters.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, chapter)
}

// Update godoc
// @Summary Update chapter
// @Tags Chapters
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Param payload body service.ChapterRequest true "Chapter payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters/{id} [put]
func (h *ChapterHandler) Update(c *gin.Context) {
	var req service.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	chapter, err := h.chapters.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chapter, nil)
}

// Delete godoc
// @Summary Delete chapter
// @Tags Chapters
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /chapters/{id} [delete]
func (h *ChapterHandler) Delete(c *gin.Context) {
	if err := h.chapters.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddAssessment godoc
// @Summary Add assessment to chapter
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Param payload body service.AssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters/{id}/assessments [post]
func (h *ChapterHandler) AddAssessment(c *gin.Context) {
	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.chapters.AddAssessment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// UpdateAssessment godoc
// @Summary Update assessment in chapter
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Param assessmentId path string true "Assessment ID"
// @Param payload body service.AssessmentRequest true "Assessment payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /chapters/{id}/assessments/{assessmentId} [put]
func (h *ChapterHandler) UpdateAssessment(c *gin.Context) {
	var req service.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.chapters.UpdateAssessment(c.Request.Context(), c.Param("id"), c.Param("assessmentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment, nil)
}

// RemoveAssessment godoc
// @Summary Remove assessment from chapter
// @Tags Assessments
// @Produce json
// @Param id path string true "Chapter ID"
// @Param assessmentId path string true "Assessment ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /chapters/{id}/assessments/{assessmentId} [delete]
func (h *ChapterHandler) RemoveAssessment(c *gin.Context) {
	if err := h.chapters.RemoveAssessment(c.Request.Context(), c.Param("id"), c.Param("assessmentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
