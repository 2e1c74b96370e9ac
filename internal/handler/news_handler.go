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

// NewsHandler exposes news article endpoints.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs NewsHandler.
func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List returns a filtered article page.
func (h *NewsHandler) List(c *gin.Context) {
	var filter models.NewsFilter
	filter.Category = c.Query("category")
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Featured = parseBoolFlag(c.Query("featured"))
	filter.Trending = parseBoolFlag(c.Query("trending"))
	filter.Page, filter.Limit = response.ParsePage(c.Request.URL.Query())

	articles, total, err := h.news.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, articles, response.NewPagination(filter.Page, filter.Limit, total))
}

// Get returns one article by id.
func (h *NewsHandler) Get(c *gin.Context) {
	article, err := h.news.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// GetBySlug returns one article by slug.
func (h *NewsHandler) GetBySlug(c *gin.Context) {
	article, err := h.news.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// Create publishes a new article.
func (h *NewsHandler) Create(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	article, err := h.news.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, article)
}

// Update applies a partial article update.
func (h *NewsHandler) Update(c *gin.Context) {
	var req models.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	article, err := h.news.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, article, nil)
}

// ToggleFeatured flips the featured flag.
func (h *NewsHandler) ToggleFeatured(c *gin.Context) {
	article, msg, err := h.news.ToggleFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, article, msg)
}

// ToggleTrending flips the trending flag.
func (h *NewsHandler) ToggleTrending(c *gin.Context) {
	article, msg, err := h.news.ToggleTrending(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, article, msg)
}

// View records a public read and returns the new view count.
func (h *NewsHandler) View(c *gin.Context) {
	views, err := h.news.RecordView(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"views": views}, nil)
}

// Delete removes an article.
func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.news.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "News article deleted")
}

// Stats returns aggregated article counters.
func (h *NewsHandler) Stats(c *gin.Context) {
	stats, err := h.news.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

func parseBoolFlag(raw string) *bool {
	switch raw {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}
