package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/models"
	"github.com/nunukkam/admin-portal-api/internal/service"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// CollegeHandler exposes college and student roster endpoints.
type CollegeHandler struct {
	colleges *service.CollegeService
}

// NewCollegeHandler constructs CollegeHandler.
func NewCollegeHandler(colleges *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{colleges: colleges}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Param search query string false "Search by name or city"
// @Param state query string false "Filter by state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	var filter models.CollegeFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.State = c.Query("state")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	colleges, pagination, err := h.colleges.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, pagination)
}

// Get godoc
// @Summary Get college detail with roster and schedules
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.colleges.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Param payload body service.CollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.colleges.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, college)
}

// Update godoc
// @Summary Update college profile
// @Description Updates profile, schedules and deadlines. The student roster has its own endpoints.
// @Tags Colleges
// @Accept json
// @Produce json
// @Param id path string true "College ID"
// @Param payload body service.CollegeRequest true "College payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.colleges.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Delete godoc
// @Summary Delete college
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /colleges/{id} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	if err := h.colleges.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddStudent godoc
// @Summary Add student to college roster
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "College ID"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id}/students [post]
func (h *CollegeHandler) AddStudent(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.colleges.AddStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// UpdateStudent godoc
// @Summary Update student in college roster
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "College ID"
// @Param studentId path string true "Student ID"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id}/students/{studentId} [put]
func (h *CollegeHandler) UpdateStudent(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.colleges.UpdateStudent(c.Request.Context(), c.Param("id"), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// RemoveStudent godoc
// @Summary Remove student from college roster
// @Tags Students
// @Produce json
// @Param id path string true "College ID"
// @Param studentId path string true "Student ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /colleges/{id}/students/{studentId} [delete]
func (h *CollegeHandler) RemoveStudent(c *gin.Context) {
	if err := h.colleges.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("studentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
