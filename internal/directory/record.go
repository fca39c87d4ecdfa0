// Package directory defines the record types for the scam/business reputation
// directory and their persistence.
package directory

import (
	"time"
)

// ReportType classifies what a scam report is about.
type ReportType string

// Report types.
const (
	ReportTypePhone    ReportType = "phone"
	ReportTypeBusiness ReportType = "business"
)

// ScamReport is a freeform public submission awaiting admin triage.
// Submitter fields are never exposed outside the submitter's own
// reference lookup.
type ScamReport struct {
	ID             int64      `json:"id" db:"id"`
	Reference      string     `json:"reference" db:"reference"`
	ReportType     ReportType `json:"report_type" db:"report_type"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	NameOnNumber   string     `json:"name_on_number,omitempty" db:"name_on_number"`
	ConnectedPage  string     `json:"connected_page,omitempty" db:"connected_page"`
	Platform       string     `json:"platform,omitempty" db:"platform"`
	Description    string     `json:"description" db:"description"`
	SubmitterName  string     `json:"-" db:"submitter_name"`
	SubmitterPhone string     `json:"-" db:"submitter_phone"`
	EvidenceURL    string     `json:"evidence_url,omitempty" db:"evidence_url"`

	Status ReportStatus `json:"status" db:"status"`

	// Conversion linkage. ConvertedReviewID and ConvertedAt are both nil or
	// both set; once set the report is terminal.
	BusinessID        *int64     `json:"business_id,omitempty" db:"business_id"`
	ConvertedReviewID *int64     `json:"converted_review_id,omitempty" db:"converted_review_id"`
	ConvertedAt       *time.Time `json:"converted_at,omitempty" db:"converted_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FlaggedNumber is a permanent admin-managed directory entry for a phone
// number. Phone is the natural key: conversions upsert on it.
type FlaggedNumber struct {
	ID            int64      `json:"id" db:"id"`
	Phone         string     `json:"phone" db:"phone"`
	NameOnNumber  string     `json:"name_on_number,omitempty" db:"name_on_number"`
	ConnectedPage string     `json:"connected_page,omitempty" db:"connected_page"`
	AdminNote     string     `json:"admin_note,omitempty" db:"admin_note"`
	Status        FlagStatus `json:"status" db:"status"`
	Verified      bool       `json:"verified" db:"verified"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Business is a directory entry browsable by the public.
type Business struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// Phone is stored as submitted; PhoneNormalized is the derived column the
	// dedup lookup matches against.
	Phone           string `json:"phone" db:"phone"`
	PhoneNormalized string `json:"-" db:"phone_normalized"`
	Location        string `json:"location,omitempty" db:"location"`
	BranchesCount   int    `json:"branches_count,omitempty" db:"branches_count"`
	Category        string `json:"category,omitempty" db:"category"`

	// Flag is the risk assessment; empty means unflagged.
	Flag BusinessFlag `json:"flag,omitempty" db:"flag"`

	Verified       bool      `json:"verified" db:"verified"`
	CreatedByAdmin bool      `json:"created_by_admin" db:"created_by_admin"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Review is a rating left on a business, either submitted publicly or
// synthesized from a converted scam report.
type Review struct {
	ID            int64  `json:"id" db:"id"`
	BusinessID    int64  `json:"business_id" db:"business_id"`
	ReviewerName  string `json:"reviewer_name" db:"reviewer_name"`
	ReviewerPhone string `json:"-" db:"reviewer_phone"`
	Rating        int    `json:"rating" db:"rating"`
	Body          string `json:"body" db:"body"`

	Status ReviewStatus `json:"status,omitempty" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
