package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// MediaHandler exposes media registration endpoints.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler constructs MediaHandler.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// List returns a filtered media page.
func (h *MediaHandler) List(c *gin.Context) {
	var filter models.MediaFilter
	filter.Folder = c.Query("folder")
	filter.Type = c.Query("type")
	filter.Page, filter.Limit = response.ParsePage(c.Request.URL.Query())

	items, total, err := h.media.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, response.NewPagination(filter.Page, filter.Limit, total))
}

// Get returns one media record by id.
func (h *MediaHandler) Get(c *gin.Context) {
	media, err := h.media.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, media, nil)
}

// Folders lists distinct folders with record counts.
func (h *MediaHandler) Folders(c *gin.Context) {
	folders, err := h.media.Folders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, folders, nil)
}

// Register stores a new media URL.
func (h *MediaHandler) Register(c *gin.Context) {
	var req models.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	media, err := h.media.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, media)
}

// Update edits the folder and alt text of a record.
func (h *MediaHandler) Update(c *gin.Context) {
	var req struct {
		Folder string `json:"folder"`
		Alt    string `json:"alt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	media, err := h.media.Update(c.Request.Context(), c.Param("id"), req.Folder, req.Alt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, media, nil)
}

// Delete removes one media record.
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.media.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Media deleted")
}

// BulkDelete removes every listed record.
func (h *MediaHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	deleted, err := h.media.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": deleted}, nil)
}
