// The functions binary serves the one-file-per-URL deployment shape
// locally: each entry point mounts at its own path prefix and carries no
// shared router state, mirroring how the platform invokes them in
// isolation.
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/newsphere/newsphere-api/internal/functions"
	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/repository"
	"github.com/newsphere/newsphere-api/internal/service"
	"github.com/newsphere/newsphere-api/pkg/cache"
	"github.com/newsphere/newsphere-api/pkg/config"
	"github.com/newsphere/newsphere-api/pkg/database"
	"github.com/newsphere/newsphere-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db := database.NewConnector(cfg.Mongo, logr)

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	newsRepo := repository.NewNewsRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	pageRepo := repository.NewPageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	readerRepo := repository.NewReaderRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	newsSvc := service.NewNewsService(newsRepo, logr)
	blogSvc := service.NewBlogService(blogRepo, logr)
	pageSvc := service.NewPageService(pageRepo, logr)
	categorySvc := service.NewCategoryService(categoryRepo, logr)
	mediaSvc := service.NewMediaService(mediaRepo, logr)
	enquirySvc := service.NewEnquiryService(enquiryRepo, logr)
	authSvc := service.NewAuthService(adminRepo, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		SetupKey:   cfg.Setup.Key,
	})
	readerSvc := service.NewReaderService(readerRepo, newsRepo, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, logr)
	dashboardSvc := service.NewDashboardService(newsSvc, enquirySvc, service.DashboardCounters{
		Blogs:      blogSvc,
		Pages:      pageSvc,
		Media:      mediaSvc,
		Categories: categorySvc,
		Readers:    readerSvc,
	}, redisClient, cfg.Dashboard.CacheTTL, logr)
	liveSvc := service.NewLiveService(gnews.New(cfg.GNews, logr), redisClient, cfg.GNews.CacheTTL, nil, logr)

	svcs := &functions.Services{
		News:           newsSvc,
		Blog:           blogSvc,
		Page:           pageSvc,
		Category:       categorySvc,
		Media:          mediaSvc,
		Enquiry:        enquirySvc,
		Auth:           authSvc,
		Reader:         readerSvc,
		Settings:       settingsSvc,
		Dashboard:      dashboardSvc,
		Live:           liveSvc,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logr,
	}

	mux := http.NewServeMux()
	mount := func(prefix string, h http.HandlerFunc) {
		mux.Handle(prefix, h)
		mux.Handle(prefix+"/", h)
	}
	mount("/api/news", svcs.NewsFeed("/api/news").HandlerFunc())
	mount("/api/blogs", svcs.Blogs("/api/blogs").HandlerFunc())
	mount("/api/pages", svcs.Pages("/api/pages").HandlerFunc())
	mount("/api/categories", svcs.Categories("/api/categories").HandlerFunc())
	mount("/api/media", svcs.MediaLibrary("/api/media").HandlerFunc())
	mount("/api/enquiries", svcs.Enquiries("/api/enquiries").HandlerFunc())
	mount("/api/auth", svcs.Authentication("/api/auth").HandlerFunc())
	mount("/api/readers", svcs.Readers("/api/readers").HandlerFunc())
	mount("/api/settings", svcs.SiteSettings("/api/settings").HandlerFunc())
	mount("/api/dashboard", svcs.AdminDashboard("/api/dashboard").HandlerFunc())
	mount("/api/live", svcs.LiveNews("/api/live").HandlerFunc())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logr.Sugar().Infow("function host starting", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logr.Sugar().Fatalw("function host failed", "error", err)
	}
}
