package models

import "time"

// MediaType classifies a registered media URL.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// IsValidMediaType reports whether raw names a known media type.
func IsValidMediaType(raw string) bool {
	switch MediaType(raw) {
	case MediaImage, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// Media is a registered asset URL. There is no binary upload; assets live
// elsewhere and the platform tracks references only.
type Media struct {
	ID         string    `bson:"_id" json:"id"`
	URL        string    `bson:"url" json:"url"`
	Type       MediaType `bson:"type" json:"type"`
	Folder     string    `bson:"folder" json:"folder"`
	Alt        string    `bson:"alt,omitempty" json:"alt,omitempty"`
	UsageCount int64     `bson:"usageCount" json:"usageCount"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MediaFilter captures list criteria for media queries.
type MediaFilter struct {
	Folder string
	Type   string
	Page   int64
	Limit  int64
}

// CreateMediaRequest registers a media URL.
type CreateMediaRequest struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Folder string `json:"folder"`
	Alt    string `json:"alt"`
}

// FolderSummary is one row of the folders aggregation.
type FolderSummary struct {
	Folder string `bson:"_id" json:"folder"`
	Count  int64  `bson:"count" json:"count"`
}
