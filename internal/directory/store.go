package directory

import (
	"context"
	"time"
)

// PageSize is the fixed page size used by every list view.
const PageSize = 25

// Page is one page of a descending created_at listing. The store never
// returns a total count: a page holding fewer than PageSize items is the
// last one, so a full page means the caller must request the next page to
// observe the end of the result set.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Number  int  `json:"page"`
	HasMore bool `json:"has_more"`
}

// newPage derives HasMore from the row count.
func newPage[T any](items []T, number int) Page[T] {
	return Page[T]{
		Items:   items,
		Number:  number,
		HasMore: len(items) == PageSize,
	}
}

// pageOffset converts a 1-based page number to a row offset.
func pageOffset(number int) int {
	if number < 1 {
		number = 1
	}
	return (number - 1) * PageSize
}

// ReportFilter specifies criteria for listing scam reports.
type ReportFilter struct {
	Status ReportStatus `json:"status,omitempty"`
	Page   int          `json:"page,omitempty"`
}

// BusinessFilter specifies criteria for listing businesses.
type BusinessFilter struct {
	Query string `json:"query,omitempty"`
	Page  int    `json:"page,omitempty"`
}

// Store defines persistence for the four directory collections. Get methods
// return (nil, nil) when no row matches.
type Store interface {
	// Scam reports
	CreateReport(ctx context.Context, r *ScamReport) error
	GetReport(ctx context.Context, id int64) (*ScamReport, error)
	GetReportByReference(ctx context.Context, reference string) (*ScamReport, error)
	ListReports(ctx context.Context, filter ReportFilter) (Page[ScamReport], error)
	UpdateReportStatus(ctx context.Context, id int64, status ReportStatus) error
	UpdateReportStatuses(ctx context.Context, ids []int64, status ReportStatus) error
	MarkReportResolved(ctx context.Context, id int64, convertedAt time.Time) error
	MarkReportConverted(ctx context.Context, id, businessID, reviewID int64, convertedAt time.Time) error

	// Flagged numbers
	UpsertFlaggedNumber(ctx context.Context, fn *FlaggedNumber) error
	GetFlaggedNumberByPhone(ctx context.Context, phone string) (*FlaggedNumber, error)
	ListFlaggedNumbers(ctx context.Context, page int) (Page[FlaggedNumber], error)
	UpdateFlaggedNumberStatus(ctx context.Context, id int64, status FlagStatus) error
	DeleteFlaggedNumber(ctx context.Context, id int64) error

	// Businesses
	CreateBusiness(ctx context.Context, b *Business) error
	GetBusiness(ctx context.Context, id int64) (*Business, error)
	FindBusinessByPhone(ctx context.Context, normalizedPhone string) (*Business, error)
	SearchBusinessesByName(ctx context.Context, name string, limit int) ([]Business, error)
	ListBusinesses(ctx context.Context, filter BusinessFilter) (Page[Business], error)
	UpdateBusiness(ctx context.Context, b *Business) error
	UpdateBusinessFlag(ctx context.Context, id int64, flag BusinessFlag) error

	// Reviews
	CreateReview(ctx context.Context, rv *Review) error
	ListReviews(ctx context.Context, businessID int64, page int) (Page[Review], error)
	UpdateReviewStatus(ctx context.Context, id int64, status ReviewStatus) error
	DeleteReview(ctx context.Context, id int64) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
