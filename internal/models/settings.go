package models

import "time"

// Singleton document keys. Each settings document is keyed by a sentinel so
// first-read seeding can use an upsert instead of check-then-insert.
const (
	SettingsKeySite = "site"
	SettingsKeyHome = "home"
)

// SiteSettings is the singleton site configuration document.
type SiteSettings struct {
	ID           string            `bson:"_id" json:"id"`
	Key          string            `bson:"key" json:"-"`
	SiteName     string            `bson:"siteName" json:"siteName"`
	Tagline      string            `bson:"tagline,omitempty" json:"tagline,omitempty"`
	LogoURL      string            `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	FooterText   string            `bson:"footerText,omitempty" json:"footerText,omitempty"`
	ContactEmail string            `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	SocialLinks  map[string]string `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// HomeContent is the singleton home page content document.
type HomeContent struct {
	ID                 string    `bson:"_id" json:"id"`
	Key                string    `bson:"key" json:"-"`
	HeroTitle          string    `bson:"heroTitle" json:"heroTitle"`
	HeroSubtitle       string    `bson:"heroSubtitle,omitempty" json:"heroSubtitle,omitempty"`
	FeaturedCategories []string  `bson:"featuredCategories,omitempty" json:"featuredCategories,omitempty"`
	ShowTrending       bool      `bson:"showTrending" json:"showTrending"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UpdateSiteSettingsRequest merge-assigns provided fields.
type UpdateSiteSettingsRequest struct {
	SiteName     *string           `json:"siteName"`
	Tagline      *string           `json:"tagline"`
	LogoURL      *string           `json:"logoUrl"`
	FooterText   *string           `json:"footerText"`
	ContactEmail *string           `json:"contactEmail"`
	SocialLinks  map[string]string `json:"socialLinks"`
}

// UpdateHomeContentRequest merge-assigns provided fields.
type UpdateHomeContentRequest struct {
	HeroTitle          *string  `json:"heroTitle"`
	HeroSubtitle       *string  `json:"heroSubtitle"`
	FeaturedCategories []string `json:"featuredCategories"`
	ShowTrending       *bool    `json:"showTrending"`
}

// DashboardStats is the aggregated admin overview.
type DashboardStats struct {
	News       NewsStats    `json:"news"`
	Enquiries  EnquiryStats `json:"enquiries"`
	Blogs      int64        `json:"blogs"`
	Pages      int64        `json:"pages"`
	Media      int64        `json:"media"`
	Categories int64        `json:"categories"`
	Readers    int64        `json:"readers"`
}
