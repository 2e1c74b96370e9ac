package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// PageHandler exposes CMS page endpoints.
type PageHandler struct {
	pages *service.PageService
}

// NewPageHandler constructs PageHandler.
func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

// List returns every page; ?published=true narrows to public ones.
func (h *PageHandler) List(c *gin.Context) {
	publishedOnly := c.Query("published") == "true"
	pages, err := h.pages.List(c.Request.Context(), publishedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pages, nil)
}

// Get returns one page by id.
func (h *PageHandler) Get(c *gin.Context) {
	page, err := h.pages.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// GetBySlug returns one page by slug.
func (h *PageHandler) GetBySlug(c *gin.Context) {
	page, err := h.pages.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Create stores a new page.
func (h *PageHandler) Create(c *gin.Context) {
	var req models.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.pages.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, page)
}

// Update applies a partial page update.
func (h *PageHandler) Update(c *gin.Context) {
	var req models.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.pages.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Delete removes a non-system page.
func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.pages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Page deleted")
}

// AddSection appends a content section to a page.
func (h *PageHandler) AddSection(c *gin.Context) {
	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.pages.AddSection(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, page)
}

// UpdateSection edits an existing section.
func (h *PageHandler) UpdateSection(c *gin.Context) {
	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	page, err := h.pages.UpdateSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// RemoveSection deletes a section from a page.
func (h *PageHandler) RemoveSection(c *gin.Context) {
	page, err := h.pages.RemoveSection(c.Request.Context(), c.Param("id"), c.Param("sectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, page, "Section removed")
}
