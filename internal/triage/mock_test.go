package triage

import (
	"context"
	"time"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

// mockConversionStore implements ConversionStore for testing. Flagged
// numbers are keyed by phone the way the real upsert is.
type mockConversionStore struct {
	flaggedByPhone map[string]*directory.FlaggedNumber
	upsertErr      error

	resolvedIDs []int64
	resolveErr  error

	reviews    []*directory.Review
	nextID     int64
	createErr  error
	deletedIDs []int64
	deleteErr  error

	convertedReports []int64
	convertErr       error
}

func newMockConversionStore() *mockConversionStore {
	return &mockConversionStore{flaggedByPhone: make(map[string]*directory.FlaggedNumber)}
}

func (m *mockConversionStore) UpsertFlaggedNumber(_ context.Context, fn *directory.FlaggedNumber) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if existing, ok := m.flaggedByPhone[fn.Phone]; ok {
		fn.ID = existing.ID
	} else {
		m.nextID++
		fn.ID = m.nextID
	}
	copied := *fn
	m.flaggedByPhone[fn.Phone] = &copied
	return nil
}

func (m *mockConversionStore) MarkReportResolved(_ context.Context, id int64, _ time.Time) error {
	if m.resolveErr != nil {
		return m.resolveErr
	}
	m.resolvedIDs = append(m.resolvedIDs, id)
	return nil
}

func (m *mockConversionStore) CreateReview(_ context.Context, rv *directory.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	rv.ID = m.nextID
	m.reviews = append(m.reviews, rv)
	return nil
}

func (m *mockConversionStore) DeleteReview(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockConversionStore) MarkReportConverted(_ context.Context, id, _, _ int64, _ time.Time) error {
	if m.convertErr != nil {
		return m.convertErr
	}
	m.convertedReports = append(m.convertedReports, id)
	return nil
}

// mockBulkStore implements BulkStore for testing.
type mockBulkStore struct {
	calls   [][]int64
	lastSet directory.ReportStatus
	err     error
}

func (m *mockBulkStore) UpdateReportStatuses(_ context.Context, ids []int64, status directory.ReportStatus) error {
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, ids)
	m.lastSet = status
	return nil
}
