package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type mockCategoryRepo struct {
	categories map[string]models.Category
	reordered  []models.CategoryOrder
	seedCalls  int
}

func (m *mockCategoryRepo) Insert(ctx context.Context, category *models.Category) error {
	if m.categories == nil {
		m.categories = make(map[string]models.Category)
	}
	if category.ID == "" {
		category.ID = "generated"
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockCategoryRepo) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	items := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		items = append(items, c)
	}
	return items, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	if _, ok := m.categories[category.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	c, ok := m.categories[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.IsActive = active
	m.categories[id] = c
	return nil
}

func (m *mockCategoryRepo) Reorder(ctx context.Context, orders []models.CategoryOrder) error {
	m.reordered = orders
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) UpsertDefault(ctx context.Context, category models.Category) error {
	m.seedCalls++
	if m.categories == nil {
		m.categories = make(map[string]models.Category)
	}
	for _, existing := range m.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return nil
		}
	}
	category.ID = "seed-" + category.Slug
	category.IsActive = true
	category.IsSystem = true
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.categories)), nil
}

func TestCategoryServiceListSeedsSystemCategories(t *testing.T) {
	repo := &mockCategoryRepo{}
	svc := NewCategoryService(repo, zap.NewNop())

	categories, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.seedCalls)
}

func TestCategoryServiceCreateConflictIsCaseInsensitive(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]models.Category{
		"c1": {ID: "c1", Name: "Technology"},
	}}
	svc := NewCategoryService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateCategoryRequest{Name: "TECHNOLOGY"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	category, err := svc.Create(context.Background(), models.CreateCategoryRequest{Name: "Opinion"})
	require.NoError(t, err)
	assert.Equal(t, "opinion", category.Slug)
	assert.True(t, category.IsActive)
	assert.False(t, category.IsSystem)
}

func TestCategoryServiceDeleteProtectsSystemCategories(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]models.Category{
		"c1": {ID: "c1", Name: "Technology", IsSystem: true},
		"c2": {ID: "c2", Name: "Opinion"},
	}}
	svc := NewCategoryService(repo, zap.NewNop())

	err := svc.Delete(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.Delete(context.Background(), "c2"))
}

func TestCategoryServiceToggleActiveMessages(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]models.Category{
		"c1": {ID: "c1", Name: "Opinion", IsActive: true},
	}}
	svc := NewCategoryService(repo, zap.NewNop())

	category, msg, err := svc.ToggleActive(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, category.IsActive)
	assert.Equal(t, "Category hidden", msg)

	category, msg, err = svc.ToggleActive(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, category.IsActive)
	assert.Equal(t, "Category activated", msg)
}

func TestCategoryServiceReorderValidatesEntries(t *testing.T) {
	repo := &mockCategoryRepo{}
	svc := NewCategoryService(repo, zap.NewNop())

	err := svc.Reorder(context.Background(), nil)
	require.Error(t, err)

	err = svc.Reorder(context.Background(), []models.CategoryOrder{{ID: "", Order: 1}})
	require.Error(t, err)

	err = svc.Reorder(context.Background(), []models.CategoryOrder{{ID: "c1", Order: 1}, {ID: "c2", Order: 0}})
	require.NoError(t, err)
	assert.Len(t, repo.reordered, 2)
}
