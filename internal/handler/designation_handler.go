package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/service"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// DesignationHandler exposes designation endpoints.
type DesignationHandler struct {
	designations *service.DesignationService
}

// NewDesignationHandler constructs DesignationHandler.
func NewDesignationHandler(designations *service.DesignationService) *DesignationHandler {
	return &DesignationHandler{designations: designations}
}

// List godoc
// @Summary List designations
// @Tags Designations
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /designations [get]
func (h *DesignationHandler) List(c *gin.Context) {
	designations, err := h.designations.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, designations, nil)
}

// Create godoc
// @Summary Create designation
// @Tags Designations
// @Accept json
// @Produce json
// @Param payload body service.DesignationRequest true "Designation payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /designations [post]
func (h *DesignationHandler) Create(c *gin.Context) {
	var req service.DesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	d, err := h.designations.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, d)
}

// Update godoc
// @Summary Rename designation
// @Tags Designations
// @Accept json
// @Produce json
// @Param id path string true "Designation ID"
// @Param payload body service.DesignationRequest true "Designation payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /designations/{id} [put]
func (h *DesignationHandler) Update(c *gin.Context) {
	var req service.DesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	d, err := h.designations.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, d, nil)
}

// Delete godoc
// @Summary Delete designation
// @Description Fails with 409 REFERENCED while an active user still carries it
// @Tags Designations
// @Produce json
// @Param id path string true "Designation ID"
// @Success 204 "No Content"
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /designations/{id} [delete]
func (h *DesignationHandler) Delete(c *gin.Context) {
	if err := h.designations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
