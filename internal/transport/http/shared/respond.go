// Package shared centralizes JSON envelopes and the outcome-to-status
// mapping so every handler renders pipeline outcomes identically.
package shared

import (
	"encoding/json"
	"net/http"

	"catalog/internal/catalog/service"
	"catalog/internal/catalog/validate"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error      string              `json:"error"`
	Message    string              `json:"message"`
	Violations validate.Violations `json:"violations,omitempty"`
}

// StatusFor maps a transport-neutral outcome category to an HTTP status.
func StatusFor(category service.Category) int {
	switch category {
	case service.CategoryCreated:
		return http.StatusCreated
	case service.CategoryNoContent:
		return http.StatusNoContent
	case service.CategoryClientError:
		return http.StatusBadRequest
	case service.CategoryConflict:
		return http.StatusConflict
	case service.CategoryPreconditionFailed:
		return http.StatusPreconditionFailed
	case service.CategoryPreconditionRequired:
		return http.StatusPreconditionRequired
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON renders a success payload.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteOutcome renders a failure outcome with the shared envelope.
func WriteOutcome(w http.ResponseWriter, outcome service.Outcome) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(outcome.Category))
	_ = json.NewEncoder(w).Encode(ErrorBody{
		Error:      string(outcome.Category),
		Message:    outcome.Detail,
		Violations: outcome.Violations,
	})
}
