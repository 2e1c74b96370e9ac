package service

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/slug"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type categoryRepository interface {
	Insert(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	SetActive(ctx context.Context, id string, active bool) error
	Reorder(ctx context.Context, orders []models.CategoryOrder) error
	Delete(ctx context.Context, id string) error
	UpsertDefault(ctx context.Context, category models.Category) error
	Count(ctx context.Context) (int64, error)
}

// CategoryService handles navigation category use-cases.
type CategoryService struct {
	repo   categoryRepository
	logger *zap.Logger

	seedOnce sync.Once
	seedErr  error
}

// NewCategoryService constructs the category service.
func NewCategoryService(repo categoryRepository, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, logger: logger}
}

// ensureDefaults seeds the system categories once per process.
func (s *CategoryService) ensureDefaults(ctx context.Context) error {
	s.seedOnce.Do(func() {
		for i, name := range models.NewsCategories {
			category := models.Category{
				Name:  string(name),
				Slug:  slug.Make(string(name)),
				Order: i,
			}
			if err := s.repo.UpsertDefault(ctx, category); err != nil {
				s.seedErr = err
				return
			}
		}
	})
	return s.seedErr
}

// List returns categories in display order, seeding defaults on first use.
func (s *CategoryService) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	if err := s.ensureDefaults(ctx); err != nil {
		return nil, appErrors.FromError(err)
	}
	categories, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return categories, nil
}

// Get returns a category by identifier.
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, appErrors.FromError(err)
	}
	return category, nil
}

// Create stores a new category. Names are unique case-insensitively.
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	if details := validation.Category(req.Name); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a category with this name already exists")
	} else if err != mongo.ErrNoDocuments {
		return nil, appErrors.FromError(err)
	}

	category := &models.Category{
		Name:     strings.TrimSpace(req.Name),
		Slug:     slug.Make(req.Name),
		IsActive: true,
	}
	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, appErrors.FromError(err)
	}
	return category, nil
}

// Rename changes a category name, keeping case-insensitive uniqueness.
// System categories keep their names.
func (s *CategoryService) Rename(ctx context.Context, id, name string) (*models.Category, error) {
	if details := validation.Category(name); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsSystem {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "system categories cannot be renamed")
	}

	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a category with this name already exists")
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, appErrors.FromError(err)
	}

	category.Name = strings.TrimSpace(name)
	category.Slug = slug.Make(name)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, appErrors.FromError(err)
	}
	return category, nil
}

// ToggleActive flips visibility and reports the resulting state.
func (s *CategoryService) ToggleActive(ctx context.Context, id string) (*models.Category, string, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	next := !category.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return nil, "", appErrors.FromError(err)
	}
	category.IsActive = next

	message := "Category hidden"
	if next {
		message = "Category activated"
	}
	return category, message, nil
}

// Reorder applies a bulk display-order update.
func (s *CategoryService) Reorder(ctx context.Context, orders []models.CategoryOrder) error {
	if len(orders) == 0 {
		return appErrors.Validation([]string{"Order list is required"})
	}
	for _, o := range orders {
		if o.ID == "" {
			return appErrors.Validation([]string{"Every order entry needs an id"})
		}
	}
	if err := s.repo.Reorder(ctx, orders); err != nil {
		return appErrors.FromError(err)
	}
	return nil
}

// Delete removes a category. System categories are protected.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if category.IsSystem {
		return appErrors.Clone(appErrors.ErrForbidden, "system categories cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "category not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// Count returns the total number of categories.
func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return total, nil
}
