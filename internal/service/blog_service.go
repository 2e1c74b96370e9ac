package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/slug"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type blogRepository interface {
	Insert(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id string) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, int64, error)
	Update(ctx context.Context, blog *models.Blog) error
	SetStatus(ctx context.Context, id string, status models.BlogStatus) error
	IncrementViews(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// BlogService handles blog post use-cases.
type BlogService struct {
	repo   blogRepository
	logger *zap.Logger
}

// NewBlogService constructs the blog service.
func NewBlogService(repo blogRepository, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{repo: repo, logger: logger}
}

// uniqueSlug derives a slug from the title, falling back to a
// timestamp-suffixed slug when the plain one is already taken.
func (s *BlogService) uniqueSlug(ctx context.Context, title string) (string, error) {
	candidate := slug.Make(title)
	_, err := s.repo.FindBySlug(ctx, candidate)
	if err == mongo.ErrNoDocuments {
		return candidate, nil
	}
	if err != nil {
		return "", appErrors.FromError(err)
	}
	return slug.WithTimestamp(title), nil
}

// List returns blog posts for the filter window with the total count.
func (s *BlogService) List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, int64, error) {
	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.FromError(err)
	}
	return posts, total, nil
}

// Get returns a post by identifier.
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.FromError(err)
	}
	return post, nil
}

// GetBySlug returns a post by slug and records the read.
func (s *BlogService) GetBySlug(ctx context.Context, slugValue string) (*models.Blog, error) {
	post, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.FromError(err)
	}
	if err := s.repo.IncrementViews(ctx, post.ID); err != nil && err != mongo.ErrNoDocuments {
		s.logger.Warn("blog view count not recorded", zap.String("id", post.ID), zap.Error(err))
	}
	return post, nil
}

// Create stores a new post. Slugs stay unique: a title collision gets a
// timestamp-suffixed slug instead of an error.
func (s *BlogService) Create(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	if details := validation.Blog(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	slugValue, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	status := models.BlogStatus(req.Status)
	if status == "" {
		status = models.BlogDraft
	}

	post := &models.Blog{
		Title:   req.Title,
		Slug:    slugValue,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Author:  req.Author,
		Status:  status,
		Tags:    req.Tags,
		Views:   0,
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("blog post created", zap.String("id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}

// Update applies the non-nil fields of the request. A title change
// regenerates the slug, keeping it unique.
func (s *BlogService) Update(ctx context.Context, id string, req models.UpdateBlogRequest) (*models.Blog, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != post.Title {
		if len(*req.Title) < validation.MinTitleLen {
			return nil, appErrors.Validation([]string{"Title must be at least 5 characters"})
		}
		slugValue, err := s.uniqueSlug(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		post.Title = *req.Title
		post.Slug = slugValue
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.Status != nil {
		status := models.BlogStatus(*req.Status)
		if status != models.BlogDraft && status != models.BlogPublished {
			return nil, appErrors.Validation([]string{"Status must be one of: draft, published"})
		}
		post.Status = status
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}

	if err := s.repo.Update(ctx, post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.FromError(err)
	}
	return post, nil
}

// Publish moves a post to published, idempotently. The message reports the
// resulting state.
func (s *BlogService) Publish(ctx context.Context, id string) (*models.Blog, string, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if post.Status == models.BlogPublished {
		return post, "Already published", nil
	}
	if err := s.repo.SetStatus(ctx, id, models.BlogPublished); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, "", appErrors.FromError(err)
	}
	post.Status = models.BlogPublished
	return post, "Published", nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// Count returns the total number of posts.
func (s *BlogService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return total, nil
}
