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

type mockMediaRepo struct {
	items map[string]models.Media
}

func (m *mockMediaRepo) Insert(ctx context.Context, media *models.Media) error {
	if m.items == nil {
		m.items = make(map[string]models.Media)
	}
	if media.ID == "" {
		media.ID = "generated"
	}
	m.items[media.ID] = *media
	return nil
}

func (m *mockMediaRepo) FindByID(ctx context.Context, id string) (*models.Media, error) {
	if media, ok := m.items[id]; ok {
		return &media, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockMediaRepo) List(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error) {
	items := make([]models.Media, 0, len(m.items))
	for _, media := range m.items {
		items = append(items, media)
	}
	return items, int64(len(items)), nil
}

func (m *mockMediaRepo) Folders(ctx context.Context) ([]models.FolderSummary, error) {
	counts := make(map[string]int64)
	for _, media := range m.items {
		counts[media.Folder]++
	}
	folders := make([]models.FolderSummary, 0, len(counts))
	for folder, count := range counts {
		folders = append(folders, models.FolderSummary{Folder: folder, Count: count})
	}
	return folders, nil
}

func (m *mockMediaRepo) Update(ctx context.Context, media *models.Media) error {
	if _, ok := m.items[media.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.items[media.ID] = *media
	return nil
}

func (m *mockMediaRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.items, id)
	return nil
}

func (m *mockMediaRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := m.items[id]; ok {
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockMediaRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

func TestMediaServiceRegisterDefaults(t *testing.T) {
	repo := &mockMediaRepo{}
	svc := NewMediaService(repo, zap.NewNop())

	media, err := svc.Register(context.Background(), models.CreateMediaRequest{
		URL: "https://cdn.example.com/hero.png",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, media.Type)
	assert.Equal(t, "general", media.Folder)
}

func TestMediaServiceRegisterRejectsBadInput(t *testing.T) {
	svc := NewMediaService(&mockMediaRepo{}, zap.NewNop())

	_, err := svc.Register(context.Background(), models.CreateMediaRequest{
		URL:  "ftp://nope",
		Type: "gif",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Len(t, appErr.Details, 2)
}

func TestMediaServiceBulkDelete(t *testing.T) {
	repo := &mockMediaRepo{items: map[string]models.Media{
		"m1": {ID: "m1"},
		"m2": {ID: "m2"},
	}}
	svc := NewMediaService(repo, zap.NewNop())

	deleted, err := svc.BulkDelete(context.Background(), []string{"m1", "m2", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.BulkDelete(context.Background(), nil)
	require.Error(t, err)
}
