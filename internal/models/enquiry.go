package models

import "time"

// EnquiryStatus tracks admin triage: new -> read (on admin view) ->
// replied (on reply) -> archived (explicit).
type EnquiryStatus string

const (
	EnquiryNew      EnquiryStatus = "new"
	EnquiryRead     EnquiryStatus = "read"
	EnquiryReplied  EnquiryStatus = "replied"
	EnquiryArchived EnquiryStatus = "archived"
)

// EnquiryReply records the admin response.
type EnquiryReply struct {
	Message   string    `bson:"message" json:"message"`
	RepliedAt time.Time `bson:"repliedAt" json:"repliedAt"`
}

// Enquiry is a public contact submission.
type Enquiry struct {
	ID          string        `bson:"_id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Email       string        `bson:"email" json:"email"`
	Subject     string        `bson:"subject" json:"subject"`
	Message     string        `bson:"message" json:"message"`
	Type        string        `bson:"type,omitempty" json:"type,omitempty"`
	Status      EnquiryStatus `bson:"status" json:"status"`
	IsImportant bool          `bson:"isImportant" json:"isImportant"`
	Reply       *EnquiryReply `bson:"reply,omitempty" json:"reply,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// EnquiryFilter captures admin list criteria.
type EnquiryFilter struct {
	Status    string
	Important *bool
	Search    string
	Page      int64
	Limit     int64
}

// CreateEnquiryRequest is the public submission payload.
type CreateEnquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// EnquiryStats counts enquiries per status.
type EnquiryStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Read      int64 `json:"read"`
	Replied   int64 `json:"replied"`
	Archived  int64 `json:"archived"`
	Important int64 `json:"important"`
}
