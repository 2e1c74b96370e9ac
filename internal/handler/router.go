package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/middleware"
	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/service"
	"github.com/newsphere/newsphere-api/pkg/logger"
	corsmiddleware "github.com/newsphere/newsphere-api/pkg/middleware/cors"
	reqidmiddleware "github.com/newsphere/newsphere-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	News      *NewsHandler
	Blog      *BlogHandler
	Page      *PageHandler
	Category  *CategoryHandler
	Media     *MediaHandler
	Enquiry   *EnquiryHandler
	Auth      *AuthHandler
	Reader    *ReaderHandler
	Settings  *SettingsHandler
	Dashboard *DashboardHandler
	Live      *LiveHandler
}

// RouterDeps carries the cross-cutting services the router wires in.
type RouterDeps struct {
	Auth           *service.AuthService
	Metrics        *service.MetricsService
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter assembles the gin engine with public and admin route groups.
func NewRouter(h Handlers, deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.AllowedOrigins))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Public surface: published content, enquiry intake, reader sync.
	api.POST("/auth/setup", h.Auth.Setup)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/verify", h.Auth.Verify)

	api.GET("/news", h.News.List)
	api.GET("/news/stats", h.News.Stats)
	api.GET("/news/slug/:slug", h.News.GetBySlug)
	api.GET("/news/:id", h.News.Get)
	api.POST("/news/:id/view", h.News.View)

	api.GET("/blogs", h.Blog.ListPublished)
	api.GET("/blogs/slug/:slug", h.Blog.GetBySlug)
	api.GET("/blogs/:id", h.Blog.Get)

	api.GET("/pages", h.Page.List)
	api.GET("/pages/slug/:slug", h.Page.GetBySlug)

	api.GET("/categories", h.Category.List)

	api.POST("/enquiries", h.Enquiry.Submit)

	api.POST("/readers/sync", h.Reader.Sync)
	api.POST("/readers/save", h.Reader.ToggleSave)
	api.GET("/readers/:clerkId/saved", h.Reader.SavedArticles)

	api.GET("/live/headlines", h.Live.Headlines)
	api.GET("/live/search", h.Live.Search)

	api.GET("/settings/site", h.Settings.Site)
	api.GET("/settings/home", h.Settings.Home)

	// Admin surface, every route behind JWT.
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(deps.Auth))

	admin.GET("/auth/me", h.Auth.Me)

	admin.GET("/dashboard/stats", h.Dashboard.Stats)
	admin.GET("/dashboard/export", h.Dashboard.Export)

	admin.GET("/news", h.News.List)
	admin.POST("/news", h.News.Create)
	admin.PUT("/news/:id", h.News.Update)
	admin.PATCH("/news/:id/featured", h.News.ToggleFeatured)
	admin.PATCH("/news/:id/trending", h.News.ToggleTrending)
	admin.DELETE("/news/:id", h.News.Delete)

	admin.GET("/blogs", h.Blog.List)
	admin.POST("/blogs", h.Blog.Create)
	admin.PUT("/blogs/:id", h.Blog.Update)
	admin.PATCH("/blogs/:id/publish", h.Blog.Publish)
	admin.DELETE("/blogs/:id", h.Blog.Delete)

	admin.GET("/pages/:id", h.Page.Get)
	admin.POST("/pages", h.Page.Create)
	admin.PUT("/pages/:id", h.Page.Update)
	admin.DELETE("/pages/:id", h.Page.Delete)
	admin.POST("/pages/:id/sections", h.Page.AddSection)
	admin.PUT("/pages/:id/sections/:sectionId", h.Page.UpdateSection)
	admin.DELETE("/pages/:id/sections/:sectionId", h.Page.RemoveSection)

	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	admin.POST("/categories", h.Category.Create)
	admin.PUT("/categories/:id", h.Category.Rename)
	admin.PATCH("/categories/:id/active", h.Category.ToggleActive)
	admin.PUT("/categories/reorder", h.Category.Reorder)
	admin.DELETE("/categories/:id", superOnly, h.Category.Delete)

	admin.GET("/media", h.Media.List)
	admin.GET("/media/folders", h.Media.Folders)
	admin.GET("/media/:id", h.Media.Get)
	admin.POST("/media", h.Media.Register)
	admin.PUT("/media/:id", h.Media.Update)
	admin.DELETE("/media/:id", h.Media.Delete)
	admin.POST("/media/bulk-delete", superOnly, h.Media.BulkDelete)

	admin.GET("/enquiries", h.Enquiry.List)
	admin.GET("/enquiries/stats", h.Enquiry.Stats)
	admin.GET("/enquiries/:id", h.Enquiry.Get)
	admin.POST("/enquiries/:id/reply", h.Enquiry.Reply)
	admin.PATCH("/enquiries/:id/archive", h.Enquiry.Archive)
	admin.PATCH("/enquiries/:id/important", h.Enquiry.ToggleImportant)
	admin.DELETE("/enquiries/:id", h.Enquiry.Delete)
	admin.POST("/enquiries/bulk-delete", superOnly, h.Enquiry.BulkDelete)

	admin.PUT("/settings/site", h.Settings.UpdateSite)
	admin.PUT("/settings/home", h.Settings.UpdateHome)

	return r
}
