package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/slug"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

// Toggle state messages reported back to the admin UI.
const (
	MsgMarkedFeatured  = "Marked as featured"
	MsgRemovedFeatured = "Removed from featured"
	MsgMarkedTrending  = "Marked as trending"
	MsgRemovedTrending = "Removed from trending"
)

type newsRepository interface {
	Insert(ctx context.Context, article *models.NewsArticle) error
	FindByID(ctx context.Context, id string) (*models.NewsArticle, error)
	FindBySlug(ctx context.Context, slug string) (*models.NewsArticle, error)
	List(ctx context.Context, filter models.NewsFilter) ([]models.NewsArticle, int64, error)
	Update(ctx context.Context, article *models.NewsArticle) error
	SetFlag(ctx context.Context, id, field string, value bool) error
	IncrementViews(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.NewsStats, error)
}

// NewsService handles news article use-cases.
type NewsService struct {
	repo   newsRepository
	logger *zap.Logger
}

// NewNewsService constructs the news service.
func NewNewsService(repo newsRepository, logger *zap.Logger) *NewsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NewsService{repo: repo, logger: logger}
}

// List returns articles for the filter window with the total count.
func (s *NewsService) List(ctx context.Context, filter models.NewsFilter) ([]models.NewsArticle, int64, error) {
	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.FromError(err)
	}
	return articles, total, nil
}

// Get returns an article by identifier.
func (s *NewsService) Get(ctx context.Context, id string) (*models.NewsArticle, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return nil, appErrors.FromError(err)
	}
	return article, nil
}

// GetBySlug returns an article by slug.
func (s *NewsService) GetBySlug(ctx context.Context, slugValue string) (*models.NewsArticle, error) {
	article, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return nil, appErrors.FromError(err)
	}
	return article, nil
}

// Create publishes a new article. New articles always start unflagged with
// zero views regardless of the payload.
func (s *NewsService) Create(ctx context.Context, req models.CreateNewsRequest) (*models.NewsArticle, error) {
	if details := validation.News(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	publishedAt := time.Now().UTC()
	if req.PublishedAt != nil {
		publishedAt = req.PublishedAt.UTC()
	}

	article := &models.NewsArticle{
		Title:       req.Title,
		Slug:        slug.WithTimestamp(req.Title),
		Summary:     req.Summary,
		Content:     req.Content,
		Category:    models.NewsCategory(req.Category),
		Source:      req.Source,
		CoverImage:  req.CoverImage,
		PublishedAt: publishedAt,
		IsFeatured:  false,
		IsTrending:  false,
		Views:       0,
		Tags:        req.Tags,
	}
	if err := s.repo.Insert(ctx, article); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("news article created", zap.String("id", article.ID), zap.String("slug", article.Slug))
	return article, nil
}

// Update applies the non-nil fields of the request. A title change
// regenerates the slug.
func (s *NewsService) Update(ctx context.Context, id string, req models.UpdateNewsRequest) (*models.NewsArticle, error) {
	if details := validation.NewsUpdate(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != article.Title {
		article.Title = *req.Title
		article.Slug = slug.WithTimestamp(*req.Title)
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Category != nil {
		article.Category = models.NewsCategory(*req.Category)
	}
	if req.Source != nil {
		article.Source = *req.Source
	}
	if req.CoverImage != nil {
		article.CoverImage = *req.CoverImage
	}
	if req.PublishedAt != nil {
		article.PublishedAt = req.PublishedAt.UTC()
	}
	if req.Tags != nil {
		article.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return nil, appErrors.FromError(err)
	}
	return article, nil
}

// ToggleFeatured flips the featured flag and reports the resulting state.
func (s *NewsService) ToggleFeatured(ctx context.Context, id string) (*models.NewsArticle, string, error) {
	return s.toggle(ctx, id, "isFeatured", MsgMarkedFeatured, MsgRemovedFeatured)
}

// ToggleTrending flips the trending flag and reports the resulting state.
func (s *NewsService) ToggleTrending(ctx context.Context, id string) (*models.NewsArticle, string, error) {
	return s.toggle(ctx, id, "isTrending", MsgMarkedTrending, MsgRemovedTrending)
}

func (s *NewsService) toggle(ctx context.Context, id, field, onMsg, offMsg string) (*models.NewsArticle, string, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var next bool
	switch field {
	case "isFeatured":
		next = !article.IsFeatured
		article.IsFeatured = next
	case "isTrending":
		next = !article.IsTrending
		article.IsTrending = next
	}

	if err := s.repo.SetFlag(ctx, id, field, next); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return nil, "", appErrors.FromError(err)
	}

	message := offMsg
	if next {
		message = onMsg
	}
	return article, message, nil
}

// RecordView bumps the view counter and returns the new total.
func (s *NewsService) RecordView(ctx context.Context, id string) (int64, error) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return 0, appErrors.FromError(err)
	}
	return views, nil
}

// Delete removes an article.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "news article not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// Stats aggregates article counters for the dashboard.
func (s *NewsService) Stats(ctx context.Context) (*models.NewsStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return stats, nil
}
