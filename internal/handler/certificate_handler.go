package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/nunukkam/admin-portal-api/internal/service"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
	"github.com/nunukkam/admin-portal-api/pkg/response"
)

// CertificateHandler exposes certificate issuance and download endpoints.
type CertificateHandler struct {
	certificates *service.CertificateService
}

// NewCertificateHandler constructs CertificateHandler.
func NewCertificateHandler(certificates *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates}
}

// Issue godoc
// @Summary Issue a course completion certificate
// @Description Idempotent per student and course: reissuing returns the existing certificate.
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body service.IssueCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /certificates [post]
func (h *CertificateHandler) Issue(c *gin.Context) {
	var req service.IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cert, err := h.certificates.Issue(c.Request.Context(), actorID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cert)
}

// Get godoc
// @Summary Get certificate detail with a signed download link
// @Tags Certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /certificates/{id} [get]
func (h *CertificateHandler) Get(c *gin.Context) {
	cert, downloadURL, err := h.certificates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"certificate": cert, "download_url": downloadURL}, nil)
}

// ListByCollege godoc
// @Summary List certificates issued for a college
// @Tags Certificates
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /colleges/{id}/certificates [get]
func (h *CertificateHandler) ListByCollege(c *gin.Context) {
	certs, err := h.certificates.ListByCollege(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, certs, nil)
}

// Download godoc
// @Summary Download a certificate PDF
// @Tags Certificates
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /certificates/download [get]
func (h *CertificateHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	path, err := h.certificates.Resolve(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
