package directory

import "fmt"

// The four collections carry independent status enumerations. They are kept
// as distinct types on purpose: the flagged-number "verified" status means
// "Confirmed Scam" while a business's Verified field means the opposite, so
// sharing a type across collections would invite exactly that mixup.

// ReportStatus is the triage disposition of a scam report.
type ReportStatus string

// Report statuses. Resolved and rejected are terminal by convention; the
// transition table allows reopening either back to reviewing.
const (
	ReportStatusNew       ReportStatus = "new"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusRejected  ReportStatus = "rejected"
)

// Valid reports whether s is a known report status.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusNew, ReportStatusReviewing, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a done state.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusRejected
}

// Label returns the display label for s.
func (s ReportStatus) Label() string {
	switch s {
	case ReportStatusNew:
		return "New"
	case ReportStatusReviewing:
		return "Reviewing"
	case ReportStatusResolved:
		return "Resolved"
	case ReportStatusRejected:
		return "Rejected"
	}
	return string(s)
}

// Tone returns the badge styling tone for s.
func (s ReportStatus) Tone() string {
	switch s {
	case ReportStatusNew:
		return "info"
	case ReportStatusReviewing:
		return "warning"
	case ReportStatusResolved:
		return "success"
	case ReportStatusRejected:
		return "neutral"
	}
	return "neutral"
}

// reportTransitions lists the allowed report status moves. A same-status
// write is always allowed.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusNew:       {ReportStatusReviewing, ReportStatusResolved, ReportStatusRejected},
	ReportStatusReviewing: {ReportStatusResolved, ReportStatusRejected},
	ReportStatusResolved:  {ReportStatusReviewing},
	ReportStatusRejected:  {ReportStatusReviewing},
}

// CanTransition reports whether s may move to target.
func (s ReportStatus) CanTransition(target ReportStatus) bool {
	if s == target {
		return target.Valid()
	}
	for _, t := range reportTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// CheckReportTransition returns a TransitionError if from may not move to to.
func CheckReportTransition(from, to ReportStatus) error {
	if !from.CanTransition(to) {
		return &TransitionError{Collection: "scam_reports", From: string(from), To: string(to)}
	}
	return nil
}

// FlagStatus is the risk assessment of a flagged number.
type FlagStatus string

// Flagged-number statuses. FlagStatusVerified displays as "Confirmed Scam".
const (
	FlagStatusUnderReview     FlagStatus = "under_review"
	FlagStatusMultipleReports FlagStatus = "multiple_reports"
	FlagStatusPatternMatch    FlagStatus = "pattern_match_scam"
	FlagStatusVerified        FlagStatus = "verified"
)

// Valid reports whether s is a known flagged-number status.
func (s FlagStatus) Valid() bool {
	switch s {
	case FlagStatusUnderReview, FlagStatusMultipleReports, FlagStatusPatternMatch, FlagStatusVerified:
		return true
	}
	return false
}

// Label returns the display label for s.
func (s FlagStatus) Label() string {
	switch s {
	case FlagStatusUnderReview:
		return "Under Review"
	case FlagStatusMultipleReports:
		return "Multiple Reports"
	case FlagStatusPatternMatch:
		return "Pattern Match - Scam"
	case FlagStatusVerified:
		return "Confirmed Scam"
	}
	return string(s)
}

// Tone returns the badge styling tone for s.
func (s FlagStatus) Tone() string {
	switch s {
	case FlagStatusUnderReview:
		return "warning"
	case FlagStatusMultipleReports, FlagStatusPatternMatch:
		return "danger"
	case FlagStatusVerified:
		return "danger"
	}
	return "neutral"
}

// CheckFlagTransition validates a flagged-number status move. The assessment
// levels have no ordering, so any valid status may move to any other.
func CheckFlagTransition(from, to FlagStatus) error {
	if !from.Valid() || !to.Valid() {
		return &TransitionError{Collection: "flagged_numbers", From: string(from), To: string(to)}
	}
	return nil
}

// BusinessFlag is the risk assessment attached to a business. Empty means
// the business carries no flag. BusinessFlagVerified means "Confirmed Scam";
// it is unrelated to Business.Verified.
type BusinessFlag string

// Business flags.
const (
	BusinessFlagNone            BusinessFlag = ""
	BusinessFlagUnderReview     BusinessFlag = "under_review"
	BusinessFlagMultipleReports BusinessFlag = "multiple_reports"
	BusinessFlagPatternMatch    BusinessFlag = "pattern_match_scam"
	BusinessFlagVerified        BusinessFlag = "verified"
)

// Valid reports whether f is a known business flag (including none).
func (f BusinessFlag) Valid() bool {
	switch f {
	case BusinessFlagNone, BusinessFlagUnderReview, BusinessFlagMultipleReports,
		BusinessFlagPatternMatch, BusinessFlagVerified:
		return true
	}
	return false
}

// Label returns the display label for f.
func (f BusinessFlag) Label() string {
	switch f {
	case BusinessFlagNone:
		return ""
	case BusinessFlagUnderReview:
		return "Under Review"
	case BusinessFlagMultipleReports:
		return "Multiple Reports"
	case BusinessFlagPatternMatch:
		return "Pattern Match - Scam"
	case BusinessFlagVerified:
		return "Confirmed Scam"
	}
	return string(f)
}

// CheckBusinessFlagTransition validates a business flag move. Flags may be
// set, changed, or cleared freely as long as both sides are known values.
func CheckBusinessFlagTransition(from, to BusinessFlag) error {
	if !from.Valid() || !to.Valid() {
		return &TransitionError{Collection: "businesses", From: string(from), To: string(to)}
	}
	return nil
}

// ReviewStatus is the moderation state of a review. Empty means the review
// has not been moderated.
type ReviewStatus string

// Review statuses.
const (
	ReviewStatusNone        ReviewStatus = ""
	ReviewStatusUnderReview ReviewStatus = "under_review"
	ReviewStatusVerified    ReviewStatus = "verified"
	ReviewStatusSpam        ReviewStatus = "spam"
)

// Valid reports whether s is a known review status (including none).
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusNone, ReviewStatusUnderReview, ReviewStatusVerified, ReviewStatusSpam:
		return true
	}
	return false
}

// Label returns the display label for s.
func (s ReviewStatus) Label() string {
	switch s {
	case ReviewStatusNone:
		return ""
	case ReviewStatusUnderReview:
		return "Under Review"
	case ReviewStatusVerified:
		return "Verified"
	case ReviewStatusSpam:
		return "Spam"
	}
	return string(s)
}

// CheckReviewTransition validates a review moderation move.
func CheckReviewTransition(from, to ReviewStatus) error {
	if !from.Valid() || !to.Valid() {
		return &TransitionError{Collection: "reviews", From: string(from), To: string(to)}
	}
	return nil
}

// TransitionError reports a rejected status move.
type TransitionError struct {
	Collection string
	From       string
	To         string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("directory: %s: invalid status transition %q -> %q", e.Collection, e.From, e.To)
}
