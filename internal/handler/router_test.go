package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/newsphere/newsphere-api/internal/middleware"
	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
)

type fakeAdminStore struct {
	admins map[string]*models.Admin
}

func (s *fakeAdminStore) Insert(_ context.Context, admin *models.Admin) error {
	s.admins[admin.ID] = admin
	return nil
}

func (s *fakeAdminStore) FindByID(_ context.Context, id string) (*models.Admin, error) {
	admin, ok := s.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return admin, nil
}

func (s *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, admin := range s.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeAdminStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.admins)), nil
}

func (s *fakeAdminStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if admin, ok := s.admins[id]; ok {
		admin.LastLogin = &at
	}
	return nil
}

func protectedTestRouter(t *testing.T, role models.AdminRole) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &fakeAdminStore{admins: map[string]*models.Admin{
		"a1": {ID: "a1", Email: "editor@example.com", PasswordHash: string(hash), Name: "Editor", Role: role, IsActive: true},
	}}
	auth := service.NewAuthService(store, zap.NewNop(), service.AuthConfig{Secret: "test-secret", Issuer: "newsphere"})

	login, err := auth.Login(context.Background(), models.LoginRequest{Email: "editor@example.com", Password: "correct horse"})
	require.NoError(t, err)

	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(middleware.JWT(auth))
	admin.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"pong": true}) })
	admin.DELETE("/guarded", middleware.RequireRoles(models.RoleSuperAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})
	return r, login.Token
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	r, _ := protectedTestRouter(t, models.RoleAdmin)

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTMiddlewareAcceptsBearerToken(t *testing.T) {
	r, token := protectedTestRouter(t, models.RoleAdmin)

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRequireRolesBlocksRegularAdmin(t *testing.T) {
	r, token := protectedTestRouter(t, models.RoleAdmin)

	req, _ := http.NewRequest(http.MethodDelete, "/admin/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestRequireRolesAllowsSuperAdmin(t *testing.T) {
	r, token := protectedTestRouter(t, models.RoleSuperAdmin)

	req, _ := http.NewRequest(http.MethodDelete, "/admin/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
}
