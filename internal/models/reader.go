package models

import "time"

// Reader is a public site user synced from the external identity provider.
// SavedArticles is an ordered, deduplicated set of news article IDs.
type Reader struct {
	ID            string    `bson:"_id" json:"id"`
	ClerkID       string    `bson:"clerkId" json:"clerkId"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	SavedArticles []string  `bson:"savedArticles" json:"savedArticles"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SyncReaderRequest upserts a reader from the identity provider.
type SyncReaderRequest struct {
	ClerkID string `json:"clerkId"`
	Email   string `json:"email"`
}

// SaveArticleRequest toggles an article in the reader's saved set.
type SaveArticleRequest struct {
	ClerkID   string `json:"clerkId"`
	ArticleID string `json:"articleId"`
}
