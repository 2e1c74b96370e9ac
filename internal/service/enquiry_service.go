package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/internal/validation"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

type enquiryRepository interface {
	Insert(ctx context.Context, enquiry *models.Enquiry) error
	FindByID(ctx context.Context, id string) (*models.Enquiry, error)
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int64, error)
	SetStatus(ctx context.Context, id string, status models.EnquiryStatus) error
	SetImportant(ctx context.Context, id string, important bool) error
	SetReply(ctx context.Context, id string, reply models.EnquiryReply) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Stats(ctx context.Context) (*models.EnquiryStats, error)
}

// EnquiryService handles contact enquiry use-cases.
type EnquiryService struct {
	repo   enquiryRepository
	logger *zap.Logger
}

// NewEnquiryService constructs the enquiry service.
func NewEnquiryService(repo enquiryRepository, logger *zap.Logger) *EnquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnquiryService{repo: repo, logger: logger}
}

// Submit stores a public contact enquiry in status "new".
func (s *EnquiryService) Submit(ctx context.Context, req models.CreateEnquiryRequest) (*models.Enquiry, error) {
	if details := validation.Enquiry(req); len(details) > 0 {
		return nil, appErrors.Validation(details)
	}

	enquiry := &models.Enquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
		Type:    req.Type,
		Status:  models.EnquiryNew,
	}
	if err := s.repo.Insert(ctx, enquiry); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("enquiry received", zap.String("id", enquiry.ID), zap.String("subject", enquiry.Subject))
	return enquiry, nil
}

// List returns enquiries for the filter window with the total count.
func (s *EnquiryService) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int64, error) {
	enquiries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.FromError(err)
	}
	return enquiries, total, nil
}

// Get returns an enquiry and moves a "new" one to "read". Viewing is the
// read receipt; other states are left alone.
func (s *EnquiryService) Get(ctx context.Context, id string) (*models.Enquiry, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.FromError(err)
	}

	if enquiry.Status == models.EnquiryNew {
		if err := s.repo.SetStatus(ctx, id, models.EnquiryRead); err != nil && err != mongo.ErrNoDocuments {
			s.logger.Warn("enquiry read receipt not recorded", zap.String("id", id), zap.Error(err))
		} else {
			enquiry.Status = models.EnquiryRead
		}
	}
	return enquiry, nil
}

// Reply records the admin response and moves the enquiry to "replied".
func (s *EnquiryService) Reply(ctx context.Context, id, message string) (*models.Enquiry, error) {
	if len(strings.TrimSpace(message)) == 0 {
		return nil, appErrors.Validation([]string{"Reply message is required"})
	}

	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, appErrors.FromError(err)
	}

	reply := models.EnquiryReply{Message: message, RepliedAt: time.Now().UTC()}
	if err := s.repo.SetReply(ctx, id, reply); err != nil {
		return nil, appErrors.FromError(err)
	}
	enquiry.Reply = &reply
	enquiry.Status = models.EnquiryReplied
	return enquiry, nil
}

// Archive moves an enquiry to "archived", idempotently.
func (s *EnquiryService) Archive(ctx context.Context, id string) (*models.Enquiry, string, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, "", appErrors.FromError(err)
	}

	if enquiry.Status == models.EnquiryArchived {
		return enquiry, "Already archived", nil
	}
	if err := s.repo.SetStatus(ctx, id, models.EnquiryArchived); err != nil {
		return nil, "", appErrors.FromError(err)
	}
	enquiry.Status = models.EnquiryArchived
	return enquiry, "Archived", nil
}

// ToggleImportant flips the important flag and reports the resulting state.
func (s *EnquiryService) ToggleImportant(ctx context.Context, id string) (*models.Enquiry, string, error) {
	enquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return nil, "", appErrors.FromError(err)
	}

	next := !enquiry.IsImportant
	if err := s.repo.SetImportant(ctx, id, next); err != nil {
		return nil, "", appErrors.FromError(err)
	}
	enquiry.IsImportant = next

	message := "Removed from important"
	if next {
		message = "Marked as important"
	}
	return enquiry, message, nil
}

// Delete removes an enquiry.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return appErrors.Clone(appErrors.ErrNotFound, "enquiry not found")
		}
		return appErrors.FromError(err)
	}
	return nil
}

// BulkDelete removes the listed enquiries and reports how many went.
func (s *EnquiryService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, appErrors.Validation([]string{"ids are required"})
	}
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, appErrors.FromError(err)
	}
	return deleted, nil
}

// Stats aggregates per-status counts for the dashboard.
func (s *EnquiryService) Stats(ctx context.Context) (*models.EnquiryStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.FromError(err)
	}
	return stats, nil
}
