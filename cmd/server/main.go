package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/handler"
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
	metricsSvc := service.NewMetricsService()
	liveSvc := service.NewLiveService(gnews.New(cfg.GNews, logr), redisClient, cfg.GNews.CacheTTL, metricsSvc, logr)

	router := handler.NewRouter(handler.Handlers{
		News:      handler.NewNewsHandler(newsSvc),
		Blog:      handler.NewBlogHandler(blogSvc),
		Page:      handler.NewPageHandler(pageSvc),
		Category:  handler.NewCategoryHandler(categorySvc),
		Media:     handler.NewMediaHandler(mediaSvc),
		Enquiry:   handler.NewEnquiryHandler(enquirySvc),
		Auth:      handler.NewAuthHandler(authSvc),
		Reader:    handler.NewReaderHandler(readerSvc),
		Settings:  handler.NewSettingsHandler(settingsSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Live:      handler.NewLiveHandler(liveSvc),
	}, handler.RouterDeps{
		Auth:           authSvc,
		Metrics:        metricsSvc,
		Logger:         logr,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logr.Sugar().Errorw("mongo disconnect failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
