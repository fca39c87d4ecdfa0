package api

import (
	"encoding/json"
	"net/http"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
	"github.com/scamwatch/scamwatch-cli/internal/triage"
)

func (s *Server) adminListReports(w http.ResponseWriter, r *http.Request) {
	status := directory.ReportStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown report status")
		return
	}
	page, err := s.store.ListReports(r.Context(), directory.ReportFilter{
		Status: status,
		Page:   queryPage(r),
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) adminSetReportStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := directory.ReportStatus(req.Status)
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, "unknown report status")
		return
	}

	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err := directory.CheckReportTransition(report.Status, target); err != nil {
		writeActionError(w, err)
		return
	}
	if err := s.store.UpdateReportStatus(r.Context(), id, target); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": target})
}

type bulkStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

// adminBulkReportStatus persists a bulk move. The optimistic view lives in
// the admin frontend; here the coordinator runs against an empty view and
// contributes the single batched write.
func (s *Server) adminBulkReportStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := directory.ReportStatus(req.Status)
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, "unknown report status")
		return
	}
	if err := s.bulk.Apply(r.Context(), triage.NewReportView(nil), req.IDs, target); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": len(req.IDs), "status": target})
}

func (s *Server) adminConvertFlagged(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err := s.converter.ConvertToFlaggedNumber(r.Context(), report); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report_id": report.ID,
		"status":    report.Status,
	})
}

type convertReviewRequest struct {
	BusinessID int64 `json:"business_id"`
}

func (s *Server) adminConvertReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	var req convertReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if report == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	reviewID, err := s.converter.ConvertToReview(r.Context(), report, req.BusinessID)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"report_id": report.ID,
		"review_id": reviewID,
		"status":    report.Status,
	})
}

type adminBusinessRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	BranchesCount int    `json:"branches_count"`
	Category      string `json:"category"`
}

// adminCreateBusiness creates a verified, admin-owned listing. The dedup
// resolver is consulted the same way as on the public path.
func (s *Server) adminCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req adminBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}

	b := &directory.Business{
		Name:           req.Name,
		Phone:          req.Phone,
		Location:       req.Location,
		BranchesCount:  req.BranchesCount,
		Category:       req.Category,
		Verified:       true,
		CreatedByAdmin: true,
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
	writeJSON(w, status, map[string]any{"id": resolved.ID, "created": created})
}

func (s *Server) adminUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	var req adminBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
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

	b.Name = req.Name
	b.Phone = req.Phone
	b.PhoneNormalized = directory.NormalizePhone(req.Phone, s.region)
	b.Location = req.Location
	b.BranchesCount = req.BranchesCount
	b.Category = req.Category
	// Admin edits always take ownership.
	b.Verified = true
	b.CreatedByAdmin = true

	if err := s.store.UpdateBusiness(r.Context(), b); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type setFlagRequest struct {
	Flag string `json:"flag"`
}

func (s *Server) adminSetBusinessFlag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid business id")
		return
	}
	var req setFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := directory.BusinessFlag(req.Flag)

	b, err := s.store.GetBusiness(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "business not found")
		return
	}
	if err := directory.CheckBusinessFlagTransition(b.Flag, target); err != nil {
		writeActionError(w, err)
		return
	}
	if err := s.store.UpdateBusinessFlag(r.Context(), id, target); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "flag": target})
}

type adminFlaggedNumberRequest struct {
	Phone         string `json:"phone"`
	NameOnNumber  string `json:"name_on_number"`
	ConnectedPage string `json:"connected_page"`
	AdminNote     string `json:"admin_note"`
	Status        string `json:"status"`
}

// adminCreateFlaggedNumber is the direct admin form; like conversions it
// upserts on phone, so re-submitting the form updates the existing entry.
func (s *Server) adminCreateFlaggedNumber(w http.ResponseWriter, r *http.Request) {
	var req adminFlaggedNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Phone == "" {
		writeError(w, http.StatusBadRequest, "phone is required")
		return
	}
	status := directory.FlagStatus(req.Status)
	if req.Status == "" {
		status = directory.FlagStatusUnderReview
	}
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "unknown flagged-number status")
		return
	}

	fn := &directory.FlaggedNumber{
		Phone:         directory.NormalizePhone(req.Phone, s.region),
		NameOnNumber:  req.NameOnNumber,
		ConnectedPage: req.ConnectedPage,
		AdminNote:     req.AdminNote,
		Status:        status,
		Verified:      true,
	}
	if err := s.store.UpsertFlaggedNumber(r.Context(), fn); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fn)
}

func (s *Server) adminSetFlaggedNumberStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid flagged-number id")
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := directory.FlagStatus(req.Status)
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, "unknown flagged-number status")
		return
	}
	if err := s.store.UpdateFlaggedNumberStatus(r.Context(), id, target); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": target})
}

func (s *Server) adminDeleteFlaggedNumber(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid flagged-number id")
		return
	}
	if err := s.store.DeleteFlaggedNumber(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminSetReviewStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid review id")
		return
	}
	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := directory.ReviewStatus(req.Status)
	if !target.Valid() {
		writeError(w, http.StatusBadRequest, "unknown review status")
		return
	}
	if err := s.store.UpdateReviewStatus(r.Context(), id, target); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": target})
}
