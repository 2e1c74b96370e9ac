package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

// Save toggle state messages.
const (
	MsgArticleSaved   = "Article saved"
	MsgArticleUnsaved = "Article removed from saved"
)

type readerRepository interface {
	Upsert(ctx context.Context, clerkID, email string) (*models.Reader, error)
	FindByClerkID(ctx context.Context, clerkID string) (*models.Reader, error)
	AddSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error)
	RemoveSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error)
	Count(ctx context.Context) (int64, error)
}

type savedArticleFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.NewsArticle, error)
}

// ReaderService handles public reader use-cases.
type ReaderService struct {
	repo   readerRepository
	news   savedArticleFinder
	logger *zap.Logger
}

// NewReaderService constructs the reader service.
func NewReaderService(repo readerRepository, news savedArticleFinder, logger *zap.Logger) *ReaderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReaderService{repo: repo, news: news, logger: logger}
}

// Sync upserts a reader from the identity provider.
func (s *ReaderService) Sync(ctx context.Context, req models.SyncReaderRequest) (*models.Reader, error) {
	if req.ClerkID == "" {
		return nil, appErrors.Validation([]string{"clerkId is required"})
	}
	reader, err := s.repo.Upsert(ctx, req.ClerkID, req.Email)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return reader, nil
}

// ToggleSave adds or removes an article from the reader's saved set and
// reports the resulting state.
func (s *ReaderService) ToggleSave(ctx context.Context, req models.SaveArticleRequest) (*models.Reader, string, error) {
	var details []string
	if req.ClerkID == "" {
		details = append(details, "clerkId is required")
	}
	if req.ArticleID == "" {
		details = append(details, "articleId is required")
	}
	if len(details) > 0 {
		return nil, "", appErrors.Validation(details)
	}

	reader, err := s.repo.FindByClerkID(ctx, req.ClerkID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "reader not found")
		}
		return nil, "", appErrors.FromError(err)
	}

	saved := false
	for _, id := range reader.SavedArticles {
		if id == req.ArticleID {
			saved = true
			break
		}
	}

	// The repository returns the post-update document, so the reader and
	// the message always describe the same state.
	message := MsgArticleSaved
	if saved {
		message = MsgArticleUnsaved
		reader, err = s.repo.RemoveSavedArticle(ctx, req.ClerkID, req.ArticleID)
	} else {
		reader, err = s.repo.AddSavedArticle(ctx, req.ClerkID, req.ArticleID)
	}
	if err != nil {
		return nil, "", appErrors.FromError(err)
	}
	return reader, message, nil
}

// SavedArticles returns the reader's saved articles in saved order.
func (s *ReaderService) SavedArticles(ctx context.Context, clerkID string) ([]models.NewsArticle, error) {
	if clerkID == "" {
		return nil, appErrors.Validation([]string{"clerkId is required"})
	}

	reader, err := s.repo.FindByClerkID(ctx, clerkID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "reader not found")
		}
		return nil, appErrors.FromError(err)
	}
	if len(reader.SavedArticles) == 0 {
		return []models.NewsArticle{}, nil
	}

	articles, err := s.news.FindByIDs(ctx, reader.SavedArticles)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return articles, nil
}

// Count returns the total number of readers.
func (s *ReaderService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return total, nil
}
