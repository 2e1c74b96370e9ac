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

// BlogHandler exposes blog post endpoints.
type BlogHandler struct {
	blogs *service.BlogService
}

// NewBlogHandler constructs BlogHandler.
func NewBlogHandler(blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// List returns a filtered post page.
func (h *BlogHandler) List(c *gin.Context) {
	var filter models.BlogFilter
	filter.Status = c.Query("status")
	filter.Tag = c.Query("tag")
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.Limit = response.ParsePage(c.Request.URL.Query())

	posts, total, err := h.blogs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, response.NewPagination(filter.Page, filter.Limit, total))
}

// ListPublished returns the public feed of published posts.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	var filter models.BlogFilter
	filter.Status = string(models.BlogPublished)
	filter.Tag = c.Query("tag")
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Page, filter.Limit = response.ParsePage(c.Request.URL.Query())

	posts, total, err := h.blogs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, response.NewPagination(filter.Page, filter.Limit, total))
}

// Get returns one post by id.
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blogs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// GetBySlug returns one post by slug and records the read.
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blogs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// Create stores a new post.
func (h *BlogHandler) Create(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.blogs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// Update applies a partial post update.
func (h *BlogHandler) Update(c *gin.Context) {
	var req models.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	post, err := h.blogs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// Publish moves a post to published.
func (h *BlogHandler) Publish(c *gin.Context) {
	post, msg, err := h.blogs.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, post, msg)
}

// Delete removes a post.
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blogs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Blog post deleted")
}
