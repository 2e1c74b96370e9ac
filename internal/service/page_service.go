package service

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/slug"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type pageRepository interface {
	Insert(ctx context.Context, page *models.Page) error
	FindByID(ctx context.Context, id string) (*models.Page, error)
	FindBySlug(ctx context.Context, slug string) (*models.Page, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Page, error)
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id string) error
	UpsertDefault(ctx context.Context, page models.Page) error
	Count(ctx context.Context) (int64, error)
}

// defaultPages are seeded once on an empty store. They are system pages and
// cannot be deleted, only edited.
var defaultPages = []models.Page{
	{Title: "About Us", Slug: "about", IsPublished: true, IsSystemPage: true},
	{Title: "Contact", Slug: "contact", IsPublished: true, IsSystemPage: true},
	{Title: "Privacy Policy", Slug: "privacy", IsPublished: true, IsSystemPage: true},
	{Title: "Terms of Service", Slug: "terms", IsPublished: true, IsSystemPage: true},
}

// PageService handles CMS page use-cases.
type PageService struct {
	repo   pageRepository
	logger *zap.Logger

	seedOnce sync.Once
	seedErr  error
}

// NewPageService constructs the page service.
func NewPageService(repo pageRepository, logger *zap.Logger) *PageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageService{repo: repo, logger: logger}
}

// ensureDefaults seeds the system pages once per process. The repository
// upserts make the seed safe against concurrent cold starts.
func (s *PageService) ensureDefaults(ctx context.Context) error {
	s.seedOnce.Do(func() {
		for _, page := range defaultPages {
			if err := s.repo.UpsertDefault(ctx, page); err != nil {
				s.seedErr = err
				return
			}
		}
	})
	return s.seedErr
}

// List returns every page, seeding defaults on first use.
func (s *PageService) List(ctx context.Context, publishedOnly bool) ([]models.Page, error) {
	if err := s.ensureDefaults(ctx); err != nil {
		return nil, appErrors.FromError(err)
	}
	pages, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return pages, nil
}

// Get returns a page by identifier.
func (s *PageService) Get(ctx context.Context, id string) (*models.Page, error) {
	page, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "page not found")
		}
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// GetBySlug returns a page by slug, seeding defaults on first use.
func (s *PageService) GetBySlug(ctx context.Context, slugValue string) (*models.Page, error) {
	if err := s.ensureDefaults(ctx); err != nil {
		return nil, appErrors.FromError(err)
	}
	page, err := s.repo.FindBySlug(ctx, slugValue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "page not found")
		}
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// Create stores a new page with a slug derived from the title.
func (s *PageService) Create(ctx context.Context, req models.CreatePageRequest) (*models.Page, error) {
	if details := validation.Page(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	slugValue := slug.Make(req.Title)
	if _, err := s.repo.FindBySlug(ctx, slugValue); err == nil {
		slugValue = slug.WithTimestamp(req.Title)
	} else if err != mongo.ErrNoDocuments {
		return nil, appErrors.FromError(err)
	}

	page := &models.Page{
		Title:       req.Title,
		Slug:        slugValue,
		Content:     req.Content,
		Sections:    []models.PageSection{},
		IsPublished: req.IsPublished,
	}
	if err := s.repo.Insert(ctx, page); err != nil {
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// Update applies the non-nil fields of the request. Slugs of existing pages
// never change so public links stay stable.
func (s *PageService) Update(ctx context.Context, id string, req models.UpdatePageRequest) (*models.Page, error) {
	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.IsPublished != nil {
		page.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, page); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "page not found")
		}
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// Delete removes a page. System pages are protected.
func (s *PageService) Delete(ctx context.Context, id string) error {
	page, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if page.IsSystemPage {
		return appErrors.Clone(appErrors.ErrForbidden, "system pages cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "page not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// AddSection appends a content section. Omitted order places the section
// last.
func (s *PageService) AddSection(ctx context.Context, pageID string, req models.SectionRequest) (*models.Page, error) {
	if req.Type == "" {
		return nil, appErrors.Validation([]string{"Section type is required"})
	}

	page, err := s.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}

	order := len(page.Sections)
	if req.Order != nil {
		order = *req.Order
	}
	page.Sections = append(page.Sections, models.PageSection{
		ID:      uuid.NewString(),
		Type:    req.Type,
		Order:   order,
		Content: req.Content,
	})
	sortSections(page.Sections)

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// UpdateSection edits an existing section in place.
func (s *PageService) UpdateSection(ctx context.Context, pageID, sectionID string, req models.SectionRequest) (*models.Page, error) {
	page, err := s.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range page.Sections {
		if page.Sections[i].ID != sectionID {
			continue
		}
		found = true
		if req.Type != "" {
			page.Sections[i].Type = req.Type
		}
		if req.Content != "" {
			page.Sections[i].Content = req.Content
		}
		if req.Order != nil {
			page.Sections[i].Order = *req.Order
		}
		break
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	sortSections(page.Sections)

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// RemoveSection deletes a section from a page.
func (s *PageService) RemoveSection(ctx context.Context, pageID, sectionID string) (*models.Page, error) {
	page, err := s.Get(ctx, pageID)
	if err != nil {
		return nil, err
	}

	kept := page.Sections[:0]
	found := false
	for _, sec := range page.Sections {
		if sec.ID == sectionID {
			found = true
			continue
		}
		kept = append(kept, sec)
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
	}
	page.Sections = kept

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, appErrors.FromError(err)
	}
	return page, nil
}

// Count returns the total number of pages.
func (s *PageService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return total, nil
}

func sortSections(sections []models.PageSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}
