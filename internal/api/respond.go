package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch-cli/internal/directory"
	"github.com/scamwatch/scamwatch-cli/internal/resilience"
	"github.com/scamwatch/scamwatch-cli/internal/triage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeActionError maps a failed action to an HTTP response: validation
// guards become 4xx with their own message, everything else is a store
// failure surfaced as a generic retryable message.
func writeActionError(w http.ResponseWriter, err error) {
	var te *directory.TransitionError
	switch {
	case errors.Is(err, triage.ErrMissingPhone):
		writeError(w, http.StatusBadRequest, "report has no phone number")
	case errors.Is(err, triage.ErrNoBusinessSelected):
		writeError(w, http.StatusBadRequest, "no business selected")
	case errors.Is(err, triage.ErrAlreadyConverted):
		writeError(w, http.StatusConflict, "report was already converted to a review")
	case errors.As(err, &te):
		writeError(w, http.StatusConflict, te.Error())
	default:
		writeStoreError(w, err)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	zap.L().Error("api: store error", zap.Error(err))
	if resilience.IsTransient(err) {
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable, try again")
		return
	}
	writeError(w, http.StatusInternalServerError, "something went wrong, try again")
}
