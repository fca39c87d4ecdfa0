package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/scamwatch-cli/internal/config"
	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

const testAdminToken = "test-admin-token"

func newTestServer(t *testing.T) (*Server, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	srv := NewServer(store, config.ServerConfig{
		AdminToken:  testAdminToken,
		CORSOrigins: []string{"*"},
		SubmitRPS:   1000,
		SubmitBurst: 1000,
	}, "+233")
	return srv, store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminToken)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReport_NormalizesPhone(t *testing.T) {
	srv, store := newTestServer(t)

	rec := doJSON(t, srv.Router(), http.MethodPost, "/api/reports", map[string]any{
		"report_type":     "phone",
		"phone":           "050 123 4567",
		"description":     "fake delivery fee scam",
		"submitter_name":  "Ama",
		"submitter_phone": "0240000000",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["reference"])

	require.Len(t, store.reports, 1)
	for _, r := range store.reports {
		assert.Equal(t, "+233501234567", r.Phone)
		assert.Equal(t, directory.ReportStatusNew, r.Status)
	}
}

func TestCreateReport_Validation(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad type", map[string]any{"report_type": "email", "description": "x", "submitter_name": "a", "submitter_phone": "b"}},
		{"no description", map[string]any{"report_type": "phone", "phone": "050", "submitter_name": "a", "submitter_phone": "b"}},
		{"no submitter", map[string]any{"report_type": "phone", "phone": "050", "description": "x"}},
		{"phone report without phone", map[string]any{"report_type": "phone", "description": "x", "submitter_name": "a", "submitter_phone": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/reports", tt.body, false)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, store.reports)
}

func TestGetReportByReference(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	report := &directory.ScamReport{
		ReportType:     directory.ReportTypePhone,
		Phone:          "+233501234567",
		Description:    "scam",
		SubmitterName:  "Ama",
		SubmitterPhone: "+233200000000",
	}
	require.NoError(t, store.CreateReport(context.Background(), report))

	rec := doJSON(t, router, http.MethodGet, "/api/reports/"+report.Reference, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "new", body["status"])
	assert.Equal(t, "New", body["status_label"])
	// Submitter details never leave the server.
	assert.NotContains(t, rec.Body.String(), "Ama")

	rec = doJSON(t, router, http.MethodGet, "/api/reports/no-such-ref", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLookupFlaggedNumber(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	require.NoError(t, store.UpsertFlaggedNumber(context.Background(), &directory.FlaggedNumber{
		Phone:  "+233501234567",
		Status: directory.FlagStatusVerified,
	}))

	// Local-format query must hit the normalized key.
	rec := doJSON(t, router, http.MethodGet, "/api/flagged-numbers/lookup?phone=0501234567", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["flagged"])
	assert.Equal(t, "Confirmed Scam", body["status_label"])

	rec = doJSON(t, router, http.MethodGet, "/api/flagged-numbers/lookup?phone=0559999999", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["flagged"])

	rec = doJSON(t, router, http.MethodGet, "/api/flagged-numbers/lookup", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBusiness_Dedup(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/businesses", map[string]any{
		"name":  "Accra Gadgets",
		"phone": "0501234567",
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decodeBody(t, rec)
	assert.Equal(t, true, first["created"])

	// Same number in international format resolves to the same listing.
	rec = doJSON(t, router, http.MethodPost, "/api/businesses", map[string]any{
		"name":  "Accra Gadgets Shop",
		"phone": "+233 50 123 4567",
	}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody(t, rec)
	assert.Equal(t, false, second["created"])
	assert.Equal(t, first["id"], second["id"])
}

func TestCreateReview(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	b := &directory.Business{Name: "Accra Gadgets", Phone: "0501234567"}
	require.NoError(t, store.CreateBusiness(context.Background(), b))

	rec := doJSON(t, router, http.MethodPost, "/api/businesses/1/reviews", map[string]any{
		"reviewer_name":  "Kofi",
		"reviewer_phone": "0240000000",
		"rating":         4,
		"body":           "solid shop",
	}, false)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/businesses/1/reviews", map[string]any{
		"reviewer_name":  "Kofi",
		"reviewer_phone": "0240000000",
		"rating":         9,
		"body":           "solid shop",
	}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/businesses/99/reviews", map[string]any{
		"reviewer_name":  "Kofi",
		"reviewer_phone": "0240000000",
		"rating":         4,
		"body":           "solid shop",
	}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBusiness_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/api/businesses/42", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_RequiresToken(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodGet, "/admin/reports", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/reports", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/reports", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_DisabledWithoutConfiguredToken(t *testing.T) {
	store := newFakeStore()
	srv := NewServer(store, config.ServerConfig{SubmitRPS: 1000, SubmitBurst: 1000}, "+233")

	rec := doJSON(t, srv.Router(), http.MethodGet, "/admin/reports", nil, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminSetReportStatus_TransitionEnforced(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	report := &directory.ScamReport{
		ReportType: directory.ReportTypePhone, Phone: "+233501234567",
		Description: "scam", SubmitterName: "a", SubmitterPhone: "b",
		Status: directory.ReportStatusResolved,
	}
	require.NoError(t, store.CreateReport(context.Background(), report))

	// Resolved cannot move to rejected.
	rec := doJSON(t, router, http.MethodPatch, "/admin/reports/1/status",
		map[string]any{"status": "rejected"}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Reopening is allowed.
	rec = doJSON(t, router, http.MethodPatch, "/admin/reports/1/status",
		map[string]any{"status": "reviewing"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, directory.ReportStatusReviewing, store.reports[1].Status)

	rec = doJSON(t, router, http.MethodPatch, "/admin/reports/1/status",
		map[string]any{"status": "bogus"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/admin/reports/99/status",
		map[string]any{"status": "reviewing"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminBulkReportStatus(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateReport(context.Background(), &directory.ScamReport{
			ReportType: directory.ReportTypePhone, Phone: "+233501234567",
			Description: "scam", SubmitterName: "a", SubmitterPhone: "b",
		}))
	}

	rec := doJSON(t, router, http.MethodPost, "/admin/reports/bulk-status",
		map[string]any{"ids": []int64{1, 3}, "status": "rejected"}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, directory.ReportStatusRejected, store.reports[1].Status)
	assert.Equal(t, directory.ReportStatusNew, store.reports[2].Status)
	assert.Equal(t, directory.ReportStatusRejected, store.reports[3].Status)
}

func TestAdminConvertFlagged(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	require.NoError(t, store.CreateReport(context.Background(), &directory.ScamReport{
		ReportType: directory.ReportTypePhone, Phone: "+233501234567",
		NameOnNumber: "Agent Kwame", Description: "scam",
		SubmitterName: "a", SubmitterPhone: "b",
	}))

	rec := doJSON(t, router, http.MethodPost, "/admin/reports/1/convert-flagged", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	fn := store.flagged["+233501234567"]
	require.NotNil(t, fn)
	assert.Equal(t, directory.FlagStatusUnderReview, fn.Status)
	assert.Equal(t, directory.ReportStatusResolved, store.reports[1].Status)
}

func TestAdminConvertReview(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	b := &directory.Business{Name: "Accra Gadgets", Phone: "0501234567"}
	require.NoError(t, store.CreateBusiness(context.Background(), b))
	require.NoError(t, store.CreateReport(context.Background(), &directory.ScamReport{
		ReportType: directory.ReportTypeBusiness, Description: "overcharged and blocked me",
		SubmitterName: "Ama", SubmitterPhone: "+233200000000",
	}))
	reportID := int64(2)

	rec := doJSON(t, router, http.MethodPost, "/admin/reports/2/convert-review",
		map[string]any{"business_id": b.ID}, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, store.reviews, 1)
	for _, rv := range store.reviews {
		assert.Equal(t, b.ID, rv.BusinessID)
		assert.Equal(t, 1, rv.Rating)
	}
	assert.Equal(t, directory.ReportStatusResolved, store.reports[reportID].Status)

	// A second conversion of the same report is refused.
	rec = doJSON(t, router, http.MethodPost, "/admin/reports/2/convert-review",
		map[string]any{"business_id": b.ID}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, store.reviews, 1)
}

func TestAdminCreateFlaggedNumber_Normalizes(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/admin/flagged-numbers", map[string]any{
		"phone":      "050 123 4567",
		"admin_note": "known scammer",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	fn := store.flagged["+233501234567"]
	require.NotNil(t, fn)
	assert.Equal(t, directory.FlagStatusUnderReview, fn.Status)
	assert.True(t, fn.Verified)
}

func TestAdminSetBusinessFlag(t *testing.T) {
	srv, store := newTestServer(t)
	router := srv.Router()

	b := &directory.Business{Name: "Shady Deals", Phone: "0501234567"}
	require.NoError(t, store.CreateBusiness(context.Background(), b))

	rec := doJSON(t, router, http.MethodPatch, "/admin/businesses/1/flag",
		map[string]any{"flag": "verified"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, directory.BusinessFlagVerified, store.businesses[1].Flag)

	// Clearing the flag is a legal move.
	rec = doJSON(t, router, http.MethodPatch, "/admin/businesses/1/flag",
		map[string]any{"flag": ""}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, directory.BusinessFlagNone, store.businesses[1].Flag)

	rec = doJSON(t, router, http.MethodPatch, "/admin/businesses/1/flag",
		map[string]any{"flag": "bogus"}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmissionRateLimit(t *testing.T) {
	store := newFakeStore()
	srv := NewServer(store, config.ServerConfig{
		AdminToken:  testAdminToken,
		SubmitRPS:   0.001,
		SubmitBurst: 1,
	}, "+233")
	router := srv.Router()

	body := map[string]any{
		"report_type":     "phone",
		"phone":           "0501234567",
		"description":     "scam",
		"submitter_name":  "a",
		"submitter_phone": "b",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/reports", body, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/reports", body, false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Reads are not limited.
	rec = doJSON(t, router, http.MethodGet, "/api/businesses", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}
