package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
)

func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (s *Server) listBusinesses(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.ListBusinesses(r.Context(), directory.BusinessFilter{
		Query: r.URL.Query().Get("q"),
		Page:  queryPage(r),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) getBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	b, err := s.store.GetBusiness(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "business not found")
		return
	}
	reviews, err := s.store.ListReviews(r.Context(), id, queryPage(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"business":   b,
		"flag_label": b.Flag.Label(),
		"reviews":    reviews,
	})
}

type createBusinessRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	BranchesCount int    `json:"branches_count"`
	Category      string `json:"category"`
}

// createBusiness is the public add-business path: never verified, dedup
// resolved before insert so phone variants of an existing listing converge
// on the same record.
func (s *Server) createBusiness(w http.ResponseWriter, r *http.Request) {
	var req createBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}

	b := &directory.Business{
		Name:          req.Name,
		Phone:         req.Phone,
		Location:      req.Location,
		BranchesCount: req.BranchesCount,
		Category:      req.Category,
	}
	resolved, created, err := s.resolver.FindOrCreate(r.Context(), b)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"id":      resolved.ID,
		"created": created,
	})
}

type createReviewRequest struct {
	ReviewerName  string `json:"reviewer_name"`
	ReviewerPhone string `json:"reviewer_phone"`
	Rating        int    `json:"rating"`
	Body          string `json:"body"`
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ReviewerName == "" || req.ReviewerPhone == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "reviewer name, phone, and review text are required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	b, err := s.store.GetBusiness(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "business not found")
		return
	}

	rv := &directory.Review{
		BusinessID:    id,
		ReviewerName:  req.ReviewerName,
		ReviewerPhone: req.ReviewerPhone,
		Rating:        req.Rating,
		Body:          req.Body,
	}
	if err := s.store.CreateReview(r.Context(), rv); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": rv.ID})
}

type createReportRequest struct {
	ReportType     string `json:"report_type"`
	Phone          string `json:"phone"`
	NameOnNumber   string `json:"name_on_number"`
	ConnectedPage  string `json:"connected_page"`
	Platform       string `json:"platform"`
	Description    string `json:"description"`
	SubmitterName  string `json:"submitter_name"`
	SubmitterPhone string `json:"submitter_phone"`
	EvidenceURL    string `json:"evidence_url"`
}

// createReport takes a public scam report and hands back a reference code
// the submitter can use to check its status later.
func (s *Server) createReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reportType := directory.ReportType(req.ReportType)
	if reportType != directory.ReportTypePhone && reportType != directory.ReportTypeBusiness {
		writeError(w, http.StatusBadRequest, "report_type must be phone or business")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.SubmitterName == "" || req.SubmitterPhone == "" {
		writeError(w, http.StatusBadRequest, "your name and phone number are required")
		return
	}
	if reportType == directory.ReportTypePhone && req.Phone == "" {
		writeError(w, http.StatusBadRequest, "the reported phone number is required")
		return
	}

	report := &directory.ScamReport{
		ReportType:     reportType,
		Phone:          directory.NormalizePhone(req.Phone, s.region),
		NameOnNumber:   req.NameOnNumber,
		ConnectedPage:  req.ConnectedPage,
		Platform:       req.Platform,
		Description:    req.Description,
		SubmitterName:  req.SubmitterName,
		SubmitterPhone: req.SubmitterPhone,
		EvidenceURL:    req.EvidenceURL,
	}
	if err := s.store.CreateReport(r.Context(), report); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"reference": report.Reference})
}

func (s *Server) getReportByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	report, err := s.store.GetReportByReference(r.Context(), reference)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reference":    report.Reference,
		"status":       report.Status,
		"status_label": report.Status.Label(),
		"created_at":   report.CreatedAt,
	})
}

func (s *Server) listFlaggedNumbers(w http.ResponseWriter, r *http.Request) {
	page, err := s.store.ListFlaggedNumbers(r.Context(), queryPage(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// lookupFlaggedNumber answers the "is this number a scam" check.
func (s *Server) lookupFlaggedNumber(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("phone")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "phone query parameter is required")
		return
	}
	normalized := directory.NormalizePhone(raw, s.region)
	fn, err := s.store.GetFlaggedNumberByPhone(r.Context(), normalized)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if fn == nil {
		writeJSON(w, http.StatusOK, map[string]any{"flagged": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"flagged":      true,
		"status":       fn.Status,
		"status_label": fn.Status.Label(),
	})
}
