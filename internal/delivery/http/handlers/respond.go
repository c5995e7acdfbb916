package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tencoupons/slot-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Validation rejections
// carry the violated rule so clients can tell the cases apart.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	case errors.Is(err, domain.ErrAuthorizationDenied):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "authorization_denied"})
	case errors.Is(err, domain.ErrFrameAlreadyClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "frame_already_closed"})
	case domain.IsInvariantViolation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invariant_violation",
			"rule":   domain.ViolatedRule(err),
			"detail": err.Error(),
		})
	case domain.IsIntervalConflict(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "interval_conflict",
			"rule":   domain.ViolatedRule(err),
			"detail": err.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
	}
}
