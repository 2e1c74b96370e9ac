package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsphere/newsphere-api/internal/models"
)

func TestNewsAccumulatesAllErrors(t *testing.T) {
	// Two independent missing fields must yield two distinct messages.
	errs := News(models.CreateNewsRequest{
		Category:   "Technology",
		CoverImage: "https://cdn.example.com/x.jpg",
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Title")
	assert.Contains(t, errs[1], "Summary")
}

func TestNewsValidPayload(t *testing.T) {
	errs := News(models.CreateNewsRequest{
		Title:      "AI Breakthrough Announced Today",
		Summary:    "Scientists report a major breakthrough in artificial intelligence research this week.",
		Category:   "Technology",
		CoverImage: "https://x/y.jpg",
	})
	assert.Empty(t, errs)
}

func TestNewsRejectsUnknownCategory(t *testing.T) {
	errs := News(models.CreateNewsRequest{
		Title:      "A perfectly fine title",
		Summary:    "A summary that is certainly long enough to pass.",
		Category:   "Sports",
		CoverImage: "https://x/y.jpg",
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Category must be one of:")
	assert.Contains(t, errs[0], "Technology")
}

func TestEnquiryValidation(t *testing.T) {
	errs := Enquiry(models.CreateEnquiryRequest{
		Name:    "Jordan",
		Email:   "not-an-email",
		Subject: "Hello",
		Message: "short",
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Email")
	assert.Contains(t, errs[1], "Message")
}

func TestSetupPasswordMinimum(t *testing.T) {
	errs := Setup(models.SetupRequest{
		Email:    "admin@example.com",
		Password: "short",
		Name:     "Admin",
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Password must be at least 8 characters")
}

func TestMediaValidation(t *testing.T) {
	errs := Media(models.CreateMediaRequest{URL: "ftp://nope", Type: "gif"})
	require.Len(t, errs, 2)
}

func TestNewsUpdateIgnoresNilFields(t *testing.T) {
	assert.Empty(t, NewsUpdate(models.UpdateNewsRequest{}))

	bad := "x"
	errs := NewsUpdate(models.UpdateNewsRequest{Title: &bad})
	require.Len(t, errs, 1)
}
