// Package validation holds the pure field validators shared by both
// deployment shapes. Validators accumulate every problem so a caller can
// fix its input in one round trip.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/newsphere/newsphere-api/internal/models"
)

// Canonical rule set; both deployment shapes use these bounds.
const (
	MinTitleLen    = 5
	MinSummaryLen  = 20
	MinMessageLen  = 10
	MinPasswordLen = 8
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlRegex   = regexp.MustCompile(`^https?://\S+$`)
)

func categoryList() string {
	names := make([]string, len(models.NewsCategories))
	for i, c := range models.NewsCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// News validates an admin news create payload.
func News(req models.CreateNewsRequest) []string {
	var errs []string
	if len(strings.TrimSpace(req.Title)) < MinTitleLen {
		errs = append(errs, fmt.Sprintf("Title must be at least %d characters", MinTitleLen))
	}
	if len(strings.TrimSpace(req.Summary)) < MinSummaryLen {
		errs = append(errs, fmt.Sprintf("Summary must be at least %d characters", MinSummaryLen))
	}
	if !models.IsValidCategory(req.Category) {
		errs = append(errs, "Category must be one of: "+categoryList())
	}
	if req.CoverImage == "" {
		errs = append(errs, "Cover image is required")
	} else if !urlRegex.MatchString(req.CoverImage) {
		errs = append(errs, "Cover image must be a valid URL")
	}
	return errs
}

// NewsUpdate validates the provided fields of a partial news update.
func NewsUpdate(req models.UpdateNewsRequest) []string {
	var errs []string
	if req.Title != nil && len(strings.TrimSpace(*req.Title)) < MinTitleLen {
		errs = append(errs, fmt.Sprintf("Title must be at least %d characters", MinTitleLen))
	}
	if req.Summary != nil && len(strings.TrimSpace(*req.Summary)) < MinSummaryLen {
		errs = append(errs, fmt.Sprintf("Summary must be at least %d characters", MinSummaryLen))
	}
	if req.Category != nil && !models.IsValidCategory(*req.Category) {
		errs = append(errs, "Category must be one of: "+categoryList())
	}
	if req.CoverImage != nil && !urlRegex.MatchString(*req.CoverImage) {
		errs = append(errs, "Cover image must be a valid URL")
	}
	return errs
}

// Blog validates a blog submit payload.
func Blog(req models.CreateBlogRequest) []string {
	var errs []string
	if len(strings.TrimSpace(req.Title)) < MinTitleLen {
		errs = append(errs, fmt.Sprintf("Title must be at least %d characters", MinTitleLen))
	}
	if strings.TrimSpace(req.Content) == "" {
		errs = append(errs, "Content is required")
	}
	if req.Status != "" && req.Status != string(models.BlogDraft) && req.Status != string(models.BlogPublished) {
		errs = append(errs, "Status must be one of: draft, published")
	}
	return errs
}

// Page validates a page create payload.
func Page(req models.CreatePageRequest) []string {
	var errs []string
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, "Title is required")
	}
	return errs
}

// Category validates a category name.
func Category(name string) []string {
	var errs []string
	if strings.TrimSpace(name) == "" {
		errs = append(errs, "Name is required")
	} else if len(name) > 50 {
		errs = append(errs, "Name must be at most 50 characters")
	}
	return errs
}

// Media validates a media URL registration.
func Media(req models.CreateMediaRequest) []string {
	var errs []string
	if req.URL == "" {
		errs = append(errs, "URL is required")
	} else if !urlRegex.MatchString(req.URL) {
		errs = append(errs, "URL must be a valid http(s) URL")
	}
	if req.Type != "" && !models.IsValidMediaType(req.Type) {
		errs = append(errs, "Type must be one of: image, video, document")
	}
	return errs
}

// Enquiry validates a public enquiry submission.
func Enquiry(req models.CreateEnquiryRequest) []string {
	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if req.Email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(req.Email) {
		errs = append(errs, "Email must be a valid email address")
	}
	if strings.TrimSpace(req.Subject) == "" {
		errs = append(errs, "Subject is required")
	}
	if len(strings.TrimSpace(req.Message)) < MinMessageLen {
		errs = append(errs, fmt.Sprintf("Message must be at least %d characters", MinMessageLen))
	}
	return errs
}

// Setup validates the first-run admin bootstrap payload.
func Setup(req models.SetupRequest) []string {
	var errs []string
	if req.Email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(req.Email) {
		errs = append(errs, "Email must be a valid email address")
	}
	if len(req.Password) < MinPasswordLen {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters", MinPasswordLen))
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "Name is required")
	}
	return errs
}
