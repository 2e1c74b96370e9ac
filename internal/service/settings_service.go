package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type settingsRepository interface {
	GetSiteSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSiteSettings(ctx context.Context, fields bson.M) (*models.SiteSettings, error)
	GetHomeContent(ctx context.Context) (*models.HomeContent, error)
	UpdateHomeContent(ctx context.Context, fields bson.M) (*models.HomeContent, error)
}

// SettingsService handles the singleton site and home documents.
type SettingsService struct {
	repo   settingsRepository
	logger *zap.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(repo settingsRepository, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, logger: logger}
}

// SiteSettings returns the site settings, seeding defaults on first read.
func (s *SettingsService) SiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := s.repo.GetSiteSettings(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return settings, nil
}

// UpdateSiteSettings merge-assigns the provided fields only; absent fields
// keep their stored values.
func (s *SettingsService) UpdateSiteSettings(ctx context.Context, req models.UpdateSiteSettingsRequest) (*models.SiteSettings, error) {
	fields := bson.M{}
	if req.SiteName != nil {
		fields["siteName"] = *req.SiteName
	}
	if req.Tagline != nil {
		fields["tagline"] = *req.Tagline
	}
	if req.LogoURL != nil {
		fields["logoUrl"] = *req.LogoURL
	}
	if req.FooterText != nil {
		fields["footerText"] = *req.FooterText
	}
	if req.ContactEmail != nil {
		fields["contactEmail"] = *req.ContactEmail
	}
	if req.SocialLinks != nil {
		fields["socialLinks"] = req.SocialLinks
	}
	if len(fields) == 0 {
		return s.SiteSettings(ctx)
	}

	settings, err := s.repo.UpdateSiteSettings(ctx, fields)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return settings, nil
}

// HomeContent returns the home content, seeding defaults on first read.
func (s *SettingsService) HomeContent(ctx context.Context) (*models.HomeContent, error) {
	content, err := s.repo.GetHomeContent(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return content, nil
}

// UpdateHomeContent merge-assigns the provided fields only.
func (s *SettingsService) UpdateHomeContent(ctx context.Context, req models.UpdateHomeContentRequest) (*models.HomeContent, error) {
	fields := bson.M{}
	if req.HeroTitle != nil {
		fields["heroTitle"] = *req.HeroTitle
	}
	if req.HeroSubtitle != nil {
		fields["heroSubtitle"] = *req.HeroSubtitle
	}
	if req.FeaturedCategories != nil {
		fields["featuredCategories"] = req.FeaturedCategories
	}
	if req.ShowTrending != nil {
		fields["showTrending"] = *req.ShowTrending
	}
	if len(fields) == 0 {
		return s.HomeContent(ctx)
	}

	content, err := s.repo.UpdateHomeContent(ctx, fields)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return content, nil
}
