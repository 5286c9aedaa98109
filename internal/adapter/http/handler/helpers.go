package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/splittab/internal/adapter/http/dto"
	"github.com/iho/splittab/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps a domain error to an HTTP response. Field-level
// validation failures carry the offending field so the client can
// surface the message against the right input.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "validation failed",
			Message: ve.Message,
			Field:   ve.Field,
		})
		return
	}

	writeError(w, mapDomainError(err), "request failed", err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownMember):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSameMember):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAmountTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoteTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// viewpointQuery extracts the required viewpoint query parameter.
func viewpointQuery(w http.ResponseWriter, r *http.Request) (domain.Member, bool) {
	viewpoint := r.URL.Query().Get("viewpoint")
	if viewpoint == "" {
		writeError(w, http.StatusBadRequest, "missing viewpoint", "viewpoint query parameter is required")
		return "", false
	}
	return domain.Member(viewpoint), true
}
