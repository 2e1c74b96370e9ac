package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// ReaderHandler exposes public reader endpoints.
type ReaderHandler struct {
	readers *service.ReaderService
}

// NewReaderHandler constructs ReaderHandler.
func NewReaderHandler(readers *service.ReaderService) *ReaderHandler {
	return &ReaderHandler{readers: readers}
}

// Sync upserts a reader from the identity provider.
func (h *ReaderHandler) Sync(c *gin.Context) {
	var req models.SyncReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reader, err := h.readers.Sync(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reader, nil)
}

// ToggleSave adds or removes an article from the saved set.
func (h *ReaderHandler) ToggleSave(c *gin.Context) {
	var req models.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reader, msg, err := h.readers.ToggleSave(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, reader, msg)
}

// SavedArticles lists the reader's saved articles.
func (h *ReaderHandler) SavedArticles(c *gin.Context) {
	articles, err := h.readers.SavedArticles(c.Request.Context(), c.Param("clerkId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, articles, nil)
}
