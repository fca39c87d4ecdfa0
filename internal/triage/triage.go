// Package triage turns incoming scam reports into permanent directory
// records and applies admin status dispositions, including bulk moves with
// optimistic local application and rollback.
package triage

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

// Validation guards, rejected before any store call.
var (
	ErrMissingPhone       = eris.New("triage: report has no phone number")
	ErrNoBusinessSelected = eris.New("triage: no business selected")
	ErrAlreadyConverted   = eris.New("triage: report was already converted to a review")
)

// ConversionStore is the store surface the conversion engine needs.
// Satisfied by directory.Store.
type ConversionStore interface {
	UpsertFlaggedNumber(ctx context.Context, fn *directory.FlaggedNumber) error
	MarkReportResolved(ctx context.Context, id int64, convertedAt time.Time) error
	CreateReview(ctx context.Context, rv *directory.Review) error
	DeleteReview(ctx context.Context, id int64) error
	MarkReportConverted(ctx context.Context, id, businessID, reviewID int64, convertedAt time.Time) error
}

// BulkStore is the store surface the bulk coordinator needs.
// Satisfied by directory.Store.
type BulkStore interface {
	UpdateReportStatuses(ctx context.Context, ids []int64, status directory.ReportStatus) error
}
