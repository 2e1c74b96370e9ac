package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/middleware"
	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// AuthHandler exposes admin authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Setup bootstraps the first admin account.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req models.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.Setup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Login authenticates an admin.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Verify checks a bearer token and returns the account it belongs to.
func (h *AuthHandler) Verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := ""
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		token = parts[1]
	}
	if token == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	admin, err := h.auth.Verify(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, models.AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role}, nil)
}

// Me returns the authenticated admin. Runs behind the JWT middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	adminValue, exists := c.Get(middleware.ContextAdminKey)
	if !exists {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	admin := adminValue.(*models.Admin)
	response.JSON(c, http.StatusOK, models.AdminInfo{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  admin.Role,
	}, nil)
}
