package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// EnquiryHandler exposes contact enquiry endpoints.
type EnquiryHandler struct {
	enquiries *service.EnquiryService
}

// NewEnquiryHandler constructs EnquiryHandler.
func NewEnquiryHandler(enquiries *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiries: enquiries}
}

// Submit accepts a public contact submission.
func (h *EnquiryHandler) Submit(c *gin.Context) {
	var req models.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enquiry)
}

// List returns a filtered enquiry page for admins.
func (h *EnquiryHandler) List(c *gin.Context) {
	var filter models.EnquiryFilter
	filter.Status = c.Query("status")
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Important = parseBoolFlag(c.Query("important"))
	filter.Page, filter.Limit = response.ParsePage(c.Request.URL.Query())

	enquiries, total, err := h.enquiries.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiries, response.NewPagination(filter.Page, filter.Limit, total))
}

// Get returns one enquiry; viewing a new one marks it read.
func (h *EnquiryHandler) Get(c *gin.Context) {
	enquiry, err := h.enquiries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enquiry, nil)
}

// Reply records the admin response.
func (h *EnquiryHandler) Reply(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enquiry, err := h.enquiries.Reply(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, enquiry, "Reply recorded")
}

// Archive moves an enquiry to archived.
func (h *EnquiryHandler) Archive(c *gin.Context) {
	enquiry, msg, err := h.enquiries.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, enquiry, msg)
}

// ToggleImportant flips the important flag.
func (h *EnquiryHandler) ToggleImportant(c *gin.Context) {
	enquiry, msg, err := h.enquiries.ToggleImportant(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, enquiry, msg)
}

// Delete removes an enquiry.
func (h *EnquiryHandler) Delete(c *gin.Context) {
	if err := h.enquiries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Enquiry deleted")
}

// BulkDelete removes a batch of enquiries by id.
func (h *EnquiryHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	deleted, err := h.enquiries.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}

// Stats returns per-status enquiry counts.
func (h *EnquiryHandler) Stats(c *gin.Context) {
	stats, err := h.enquiries.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
