package handler

import (
	"errors"
	"net/http"

	"inkwell/internal/domain"
	"inkwell/internal/httputil"
)

// handleError maps domain errors to HTTP status codes and stable
// machine-readable codes. Store failures stay generic so internal detail
// never reaches the client.
func (h *ItemHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondProblem(w, http.StatusBadRequest, verr.Message, verr.Code)
	case errors.Is(err, domain.ErrInvalidID):
		respondProblem(w, http.StatusBadRequest, "invalid id format", "invalid_id")
	case errors.Is(err, domain.ErrNoValidFields):
		respondProblem(w, http.StatusBadRequest, "no valid fields for this item type", "no_valid_fields")
	case errors.Is(err, domain.ErrValidation):
		respondProblem(w, http.StatusBadRequest, err.Error(), "validation_failed")
	case errors.Is(err, domain.ErrParentNotFound):
		respondProblem(w, http.StatusNotFound, "parent not found", "parent_not_found")
	case errors.Is(err, domain.ErrNotFound):
		respondProblem(w, http.StatusNotFound, "item not found", "not_found")
	case errors.Is(err, domain.ErrUnauthorized):
		respondProblem(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	default:
		h.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
		respondProblem(w, http.StatusInternalServerError, "storage operation failed", "store_failure")
	}
}

func respondProblem(w http.ResponseWriter, status int, detail, code string) {
	httputil.RespondErrorWithExtras(w, status, detail, map[string]interface{}{
		"code": code,
	})
}
