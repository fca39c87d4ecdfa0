package api

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

// fakeStore is an in-memory directory.Store for handler tests.
type fakeStore struct {
	reports    map[int64]*directory.ScamReport
	flagged    map[string]*directory.FlaggedNumber
	businesses map[int64]*directory.Business
	reviews    map[int64]*directory.Review
	nextID     int64

	// forced failures
	bulkErr   error
	upsertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reports:    make(map[int64]*directory.ScamReport),
		flagged:    make(map[string]*directory.FlaggedNumber),
		businesses: make(map[int64]*directory.Business),
		reviews:    make(map[int64]*directory.Review),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// -- Scam reports --

func (f *fakeStore) CreateReport(_ context.Context, r *directory.ScamReport) error {
	r.ID = f.id()
	if r.Reference == "" {
		r.Reference = fmt.Sprintf("ref-%d", r.ID)
	}
	if r.Status == "" {
		r.Status = directory.ReportStatusNew
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	copied := *r
	f.reports[r.ID] = &copied
	return nil
}

func (f *fakeStore) GetReport(_ context.Context, id int64) (*directory.ScamReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeStore) GetReportByReference(_ context.Context, reference string) (*directory.ScamReport, error) {
	for _, r := range f.reports {
		if r.Reference == reference {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListReports(_ context.Context, filter directory.ReportFilter) (directory.Page[directory.ScamReport], error) {
	var items []directory.ScamReport
	for _, r := range f.reports {
		if filter.Status == "" || r.Status == filter.Status {
			items = append(items, *r)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return directory.Page[directory.ScamReport]{Items: items, Number: filter.Page, HasMore: false}, nil
}

func (f *fakeStore) UpdateReportStatus(_ context.Context, id int64, status directory.ReportStatus) error {
	if r, ok := f.reports[id]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeStore) UpdateReportStatuses(_ context.Context, ids []int64, status directory.ReportStatus) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	for _, id := range ids {
		if r, ok := f.reports[id]; ok {
			r.Status = status
		}
	}
	return nil
}

func (f *fakeStore) MarkReportResolved(_ context.Context, id int64, convertedAt time.Time) error {
	if r, ok := f.reports[id]; ok {
		r.Status = directory.ReportStatusResolved
		r.ConvertedAt = &convertedAt
	}
	return nil
}

func (f *fakeStore) MarkReportConverted(_ context.Context, id, businessID, reviewID int64, convertedAt time.Time) error {
	if r, ok := f.reports[id]; ok {
		r.Status = directory.ReportStatusResolved
		r.BusinessID = &businessID
		r.ConvertedReviewID = &reviewID
		r.ConvertedAt = &convertedAt
	}
	return nil
}

// -- Flagged numbers --

func (f *fakeStore) UpsertFlaggedNumber(_ context.Context, fn *directory.FlaggedNumber) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing, ok := f.flagged[fn.Phone]; ok {
		fn.ID = existing.ID
	} else {
		fn.ID = f.id()
	}
	copied := *fn
	f.flagged[fn.Phone] = &copied
	return nil
}

func (f *fakeStore) GetFlaggedNumberByPhone(_ context.Context, phone string) (*directory.FlaggedNumber, error) {
	fn, ok := f.flagged[phone]
	if !ok {
		return nil, nil
	}
	copied := *fn
	return &copied, nil
}

func (f *fakeStore) ListFlaggedNumbers(_ context.Context, page int) (directory.Page[directory.FlaggedNumber], error) {
	var items []directory.FlaggedNumber
	for _, fn := range f.flagged {
		items = append(items, *fn)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return directory.Page[directory.FlaggedNumber]{Items: items, Number: page, HasMore: false}, nil
}

func (f *fakeStore) UpdateFlaggedNumberStatus(_ context.Context, id int64, status directory.FlagStatus) error {
	for _, fn := range f.flagged {
		if fn.ID == id {
			fn.Status = status
		}
	}
	return nil
}

func (f *fakeStore) DeleteFlaggedNumber(_ context.Context, id int64) error {
	for phone, fn := range f.flagged {
		if fn.ID == id {
			delete(f.flagged, phone)
		}
	}
	return nil
}

// -- Businesses --

func (f *fakeStore) CreateBusiness(_ context.Context, b *directory.Business) error {
	b.ID = f.id()
	copied := *b
	f.businesses[b.ID] = &copied
	return nil
}

func (f *fakeStore) GetBusiness(_ context.Context, id int64) (*directory.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) FindBusinessByPhone(_ context.Context, normalizedPhone string) (*directory.Business, error) {
	var match *directory.Business
	for _, b := range f.businesses {
		if b.PhoneNormalized == normalizedPhone && (match == nil || b.ID < match.ID) {
			match = b
		}
	}
	if match == nil {
		return nil, nil
	}
	copied := *match
	return &copied, nil
}

func (f *fakeStore) SearchBusinessesByName(_ context.Context, name string, limit int) ([]directory.Business, error) {
	var items []directory.Business
	for _, b := range f.businesses {
		if strings.Contains(strings.ToLower(b.Name), strings.ToLower(name)) {
			items = append(items, *b)
		}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeStore) ListBusinesses(_ context.Context, filter directory.BusinessFilter) (directory.Page[directory.Business], error) {
	var items []directory.Business
	for _, b := range f.businesses {
		if filter.Query == "" || strings.Contains(strings.ToLower(b.Name), strings.ToLower(filter.Query)) {
			items = append(items, *b)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return directory.Page[directory.Business]{Items: items, Number: filter.Page, HasMore: false}, nil
}

func (f *fakeStore) UpdateBusiness(_ context.Context, b *directory.Business) error {
	copied := *b
	f.businesses[b.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateBusinessFlag(_ context.Context, id int64, flag directory.BusinessFlag) error {
	if b, ok := f.businesses[id]; ok {
		b.Flag = flag
	}
	return nil
}

// -- Reviews --

func (f *fakeStore) CreateReview(_ context.Context, rv *directory.Review) error {
	rv.ID = f.id()
	copied := *rv
	f.reviews[rv.ID] = &copied
	return nil
}

func (f *fakeStore) ListReviews(_ context.Context, businessID int64, page int) (directory.Page[directory.Review], error) {
	var items []directory.Review
	for _, rv := range f.reviews {
		if rv.BusinessID == businessID {
			items = append(items, *rv)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return directory.Page[directory.Review]{Items: items, Number: page, HasMore: false}, nil
}

func (f *fakeStore) UpdateReviewStatus(_ context.Context, id int64, status directory.ReviewStatus) error {
	if rv, ok := f.reviews[id]; ok {
		rv.Status = status
	}
	return nil
}

func (f *fakeStore) DeleteReview(_ context.Context, id int64) error {
	delete(f.reviews, id)
	return nil
}

// -- Lifecycle --

func (f *fakeStore) Migrate(_ context.Context) error { return nil }
func (f *fakeStore) Close() error                    { return nil }
