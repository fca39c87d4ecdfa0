package triage

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

// Converter turns a scam report into a flagged number or a review. Each
// conversion is two sequential store writes (target record, then source
// report); there is no transaction spanning both, so the second write
// carries an explicit recovery path.
type Converter struct {
	store ConversionStore
	now   func() time.Time
}

// NewConverter creates a conversion engine.
func NewConverter(store ConversionStore) *Converter {
	return &Converter{store: store, now: time.Now}
}

// ConvertToFlaggedNumber upserts a flagged number keyed by the report's
// phone and marks the report resolved. Upserting makes the operation
// idempotent with respect to phone identity: converting the same report
// twice yields one flagged-number row.
func (c *Converter) ConvertToFlaggedNumber(ctx context.Context, report *directory.ScamReport) error {
	if strings.TrimSpace(report.Phone) == "" {
		return ErrMissingPhone
	}

	fn := &directory.FlaggedNumber{
		Phone:         report.Phone,
		NameOnNumber:  report.NameOnNumber,
		ConnectedPage: report.ConnectedPage,
		AdminNote:     report.Description,
		Status:        directory.FlagStatusUnderReview,
		Verified:      true,
	}
	if err := c.store.UpsertFlaggedNumber(ctx, fn); err != nil {
		// Report untouched; the admin may retry the identical action.
		return eris.Wrapf(err, "triage: flagged number upsert for report %d", report.ID)
	}

	convertedAt := c.now().UTC()
	if err := c.store.MarkReportResolved(ctx, report.ID, convertedAt); err != nil {
		// The flagged number is already written, but the upsert is idempotent
		// so retrying the whole conversion converges.
		zap.L().Warn("triage: flagged number written but report not resolved, retry is safe",
			zap.Int64("report_id", report.ID),
			zap.String("phone", fn.Phone),
			zap.Error(err),
		)
		return eris.Wrapf(err, "triage: resolve report %d", report.ID)
	}

	report.Status = directory.ReportStatusResolved
	report.ConvertedAt = &convertedAt

	zap.L().Info("triage: report converted to flagged number",
		zap.Int64("report_id", report.ID),
		zap.Int64("flagged_number_id", fn.ID),
		zap.String("phone", fn.Phone),
	)
	return nil
}

// ConvertToReview inserts a review on the selected business synthesized from
// the report and links it back to the report. Returns the new review's ID.
// A report that already carries a converted review is rejected; without the
// guard, re-running the conversion would orphan the first review.
func (c *Converter) ConvertToReview(ctx context.Context, report *directory.ScamReport, businessID int64) (int64, error) {
	if businessID == 0 {
		return 0, ErrNoBusinessSelected
	}
	if report.ConvertedReviewID != nil {
		return 0, ErrAlreadyConverted
	}

	rv := &directory.Review{
		BusinessID:    businessID,
		ReviewerName:  report.SubmitterName,
		ReviewerPhone: report.SubmitterPhone,
		Rating:        1,
		Body:          SynthesizeReviewBody(report),
	}
	if err := c.store.CreateReview(ctx, rv); err != nil {
		// Report untouched.
		return 0, eris.Wrapf(err, "triage: review insert for report %d", report.ID)
	}

	convertedAt := c.now().UTC()
	if err := c.store.MarkReportConverted(ctx, report.ID, businessID, rv.ID, convertedAt); err != nil {
		// Compensate: without the report linkage the review is an orphan,
		// so remove it and let the admin retry the whole conversion.
		if derr := c.store.DeleteReview(ctx, rv.ID); derr != nil {
			zap.L().Error("triage: compensation failed, review orphaned",
				zap.Int64("report_id", report.ID),
				zap.Int64("review_id", rv.ID),
				zap.Error(derr),
			)
		}
		return 0, eris.Wrapf(err, "triage: link report %d to review", report.ID)
	}

	report.BusinessID = &businessID
	report.ConvertedReviewID = &rv.ID
	report.ConvertedAt = &convertedAt
	report.Status = directory.ReportStatusResolved

	zap.L().Info("triage: report converted to review",
		zap.Int64("report_id", report.ID),
		zap.Int64("business_id", businessID),
		zap.Int64("review_id", rv.ID),
	)
	return rv.ID, nil
}

// reviewBodyHeader opens every synthesized review body.
const reviewBodyHeader = "Converted from report submission"

// SynthesizeReviewBody builds the review text from a report, one labeled
// line per non-empty field. Omitted fields leave no blank line behind.
func SynthesizeReviewBody(report *directory.ScamReport) string {
	lines := []string{
		reviewBodyHeader,
		"Report type: " + string(report.ReportType),
	}
	if report.Platform != "" {
		lines = append(lines, "Platform: "+report.Platform)
	}
	if report.ConnectedPage != "" {
		lines = append(lines, "Reported page: "+report.ConnectedPage)
	}
	lines = append(lines, "Details: "+report.Description)
	if report.EvidenceURL != "" {
		lines = append(lines, "Evidence: "+report.EvidenceURL)
	}
	return strings.Join(lines, "\n")
}
