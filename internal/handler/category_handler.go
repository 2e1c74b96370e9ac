package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// CategoryHandler exposes navigation category endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler constructs CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List returns categories in display order; ?active=true narrows to
// visible ones.
func (h *CategoryHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	categories, err := h.categories.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// Create stores a new category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Rename changes a category name.
func (h *CategoryHandler) Rename(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	category, err := h.categories.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category, nil)
}

// ToggleActive flips category visibility.
func (h *CategoryHandler) ToggleActive(c *gin.Context) {
	category, msg, err := h.categories.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, category, msg)
}

// Reorder applies a bulk display-order update.
func (h *CategoryHandler) Reorder(c *gin.Context) {
	var orders []models.CategoryOrder
	if err := c.ShouldBindJSON(&orders); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.categories.Reorder(c.Request.Context(), orders); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Categories reordered")
}

// Delete removes a non-system category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, nil, "Category deleted")
}
