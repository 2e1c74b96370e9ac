package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type mockReaderRepo struct {
	readers map[string]models.Reader
}

func (m *mockReaderRepo) Upsert(ctx context.Context, clerkID, email string) (*models.Reader, error) {
	if m.readers == nil {
		m.readers = make(map[string]models.Reader)
	}
	r, ok := m.readers[clerkID]
	if !ok {
		r = models.Reader{ID: "r-" + clerkID, ClerkID: clerkID, SavedArticles: []string{}}
	}
	r.Email = email
	m.readers[clerkID] = r
	return &r, nil
}

func (m *mockReaderRepo) FindByClerkID(ctx context.Context, clerkID string) (*models.Reader, error) {
	if r, ok := m.readers[clerkID]; ok {
		return &r, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockReaderRepo) AddSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error) {
	r, ok := m.readers[clerkID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	present := false
	for _, id := range r.SavedArticles {
		if id == articleID {
			present = true
			break
		}
	}
	if !present {
		r.SavedArticles = append(r.SavedArticles, articleID)
	}
	m.readers[clerkID] = r
	return &r, nil
}

func (m *mockReaderRepo) RemoveSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error) {
	r, ok := m.readers[clerkID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	kept := make([]string, 0, len(r.SavedArticles))
	for _, id := range r.SavedArticles {
		if id != articleID {
			kept = append(kept, id)
		}
	}
	r.SavedArticles = kept
	m.readers[clerkID] = r
	return &r, nil
}

func (m *mockReaderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.readers)), nil
}

type mockArticleFinder struct {
	articles map[string]models.NewsArticle
}

func (m *mockArticleFinder) FindByIDs(ctx context.Context, ids []string) ([]models.NewsArticle, error) {
	found := make([]models.NewsArticle, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.articles[id]; ok {
			found = append(found, a)
		}
	}
	return found, nil
}

func TestReaderServiceSyncRequiresClerkID(t *testing.T) {
	svc := NewReaderService(&mockReaderRepo{}, &mockArticleFinder{}, zap.NewNop())

	_, err := svc.Sync(context.Background(), models.SyncReaderRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	reader, err := svc.Sync(context.Background(), models.SyncReaderRequest{ClerkID: "clerk-1", Email: "r@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "clerk-1", reader.ClerkID)
	assert.Empty(t, reader.SavedArticles)
}

func TestReaderServiceToggleSaveRoundTrip(t *testing.T) {
	repo := &mockReaderRepo{readers: map[string]models.Reader{
		"clerk-1": {ID: "r1", ClerkID: "clerk-1", SavedArticles: []string{}},
	}}
	svc := NewReaderService(repo, &mockArticleFinder{}, zap.NewNop())

	reader, msg, err := svc.ToggleSave(context.Background(), models.SaveArticleRequest{ClerkID: "clerk-1", ArticleID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, MsgArticleSaved, msg)
	assert.Equal(t, []string{"n1"}, reader.SavedArticles)

	reader, msg, err = svc.ToggleSave(context.Background(), models.SaveArticleRequest{ClerkID: "clerk-1", ArticleID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, MsgArticleUnsaved, msg)
	assert.Empty(t, reader.SavedArticles)
}

// staleReadReaderRepo serves reads from a snapshot taken before a
// concurrent writer touched the document, while updates operate on the
// live state.
type staleReadReaderRepo struct {
	*mockReaderRepo
	snapshot models.Reader
	reads    int
}

func (m *staleReadReaderRepo) FindByClerkID(ctx context.Context, clerkID string) (*models.Reader, error) {
	m.reads++
	stale := m.snapshot
	return &stale, nil
}

func TestReaderServiceToggleSaveReturnsUpdateResult(t *testing.T) {
	inner := &mockReaderRepo{readers: map[string]models.Reader{
		"clerk-1": {ID: "r1", ClerkID: "clerk-1", SavedArticles: []string{"n9"}},
	}}
	repo := &staleReadReaderRepo{
		mockReaderRepo: inner,
		snapshot:       models.Reader{ID: "r1", ClerkID: "clerk-1", SavedArticles: []string{}},
	}
	svc := NewReaderService(repo, &mockArticleFinder{}, zap.NewNop())

	reader, msg, err := svc.ToggleSave(context.Background(), models.SaveArticleRequest{ClerkID: "clerk-1", ArticleID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, MsgArticleSaved, msg)

	// the reader reflects the update itself, including the concurrent save
	assert.Equal(t, []string{"n9", "n1"}, reader.SavedArticles)
	assert.Equal(t, 1, repo.reads)
}

func TestReaderServiceToggleSaveAggregatesMissingFields(t *testing.T) {
	svc := NewReaderService(&mockReaderRepo{}, &mockArticleFinder{}, zap.NewNop())

	_, _, err := svc.ToggleSave(context.Background(), models.SaveArticleRequest{})
	require.Error(t, err)
	assert.Len(t, appErrors.FromError(err).Details, 2)
}

func TestReaderServiceSavedArticlesPreservesOrder(t *testing.T) {
	repo := &mockReaderRepo{readers: map[string]models.Reader{
		"clerk-1": {ID: "r1", ClerkID: "clerk-1", SavedArticles: []string{"n2", "n1", "gone"}},
	}}
	finder := &mockArticleFinder{articles: map[string]models.NewsArticle{
		"n1": {ID: "n1", Title: "First"},
		"n2": {ID: "n2", Title: "Second"},
	}}
	svc := NewReaderService(repo, finder, zap.NewNop())

	articles, err := svc.SavedArticles(context.Background(), "clerk-1")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	// deleted articles drop out silently, order of the rest is kept
	assert.Equal(t, "n2", articles[0].ID)
	assert.Equal(t, "n1", articles[1].ID)
}

func TestReaderServiceSavedArticlesUnknownReader(t *testing.T) {
	svc := NewReaderService(&mockReaderRepo{}, &mockArticleFinder{}, zap.NewNop())

	_, err := svc.SavedArticles(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
