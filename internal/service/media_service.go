package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type mediaRepository interface {
	Insert(ctx context.Context, media *models.Media) error
	FindByID(ctx context.Context, id string) (*models.Media, error)
	List(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error)
	Folders(ctx context.Context) ([]models.FolderSummary, error)
	Update(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MediaService handles media registration use-cases. Assets live on external
// storage; the platform only tracks URLs.
type MediaService struct {
	repo   mediaRepository
	logger *zap.Logger
}

// NewMediaService constructs the media service.
func NewMediaService(repo mediaRepository, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaService{repo: repo, logger: logger}
}

// List returns media records for the filter window with the total count.
func (s *MediaService) List(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.FromError(err)
	}
	return items, total, nil
}

// Get returns a media record by identifier.
func (s *MediaService) Get(ctx context.Context, id string) (*models.Media, error) {
	media, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "media not found")
		}
		return nil, appErrors.FromError(err)
	}
	return media, nil
}

// Folders lists distinct folders with their record counts.
func (s *MediaService) Folders(ctx context.Context) ([]models.FolderSummary, error) {
	folders, err := s.repo.Folders(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return folders, nil
}

// Register stores a new media URL. Untyped registrations default to image
// and unfoldered ones land in "general".
func (s *MediaService) Register(ctx context.Context, req models.CreateMediaRequest) (*models.Media, error) {
	if details := validation.Media(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	mediaType := models.MediaType(req.Type)
	if mediaType == "" {
		mediaType = models.MediaImage
	}
	folder := req.Folder
	if folder == "" {
		folder = "general"
	}

	media := &models.Media{
		URL:    req.URL,
		Type:   mediaType,
		Folder: folder,
		Alt:    req.Alt,
	}
	if err := s.repo.Insert(ctx, media); err != nil {
		return nil, appErrors.FromError(err)
	}
	return media, nil
}

// Update edits the alt text and folder of a media record.
func (s *MediaService) Update(ctx context.Context, id, folder, alt string) (*models.Media, error) {
	media, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if folder != "" {
		media.Folder = folder
	}
	if alt != "" {
		media.Alt = alt
	}
	if err := s.repo.Update(ctx, media); err != nil {
		return nil, appErrors.FromError(err)
	}
	return media, nil
}

// Delete removes a media record.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "media not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// BulkDelete removes every listed record and reports how many existed.
func (s *MediaService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, appErrors.Validation([]string{"At least one id is required"})
	}
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return deleted, nil
}

// Count returns the total number of media records.
func (s *MediaService) Count(ctx context.Context) (int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return total, nil
}
