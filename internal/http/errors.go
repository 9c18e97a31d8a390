// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fairyhunter13/beverage-stock-service/internal/ledger"
	"github.com/fairyhunter13/beverage-stock-service/internal/model"
	"github.com/fairyhunter13/beverage-stock-service/internal/planning"
)

// jsonError represents a JSON error payload. Available is only populated for
// insufficient stock rejections.
type jsonError struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Available *int64 `json:"available,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	writeErrorPayload(w, status, jsonError{Error: message, Details: details})
}

func writeErrorPayload(w http.ResponseWriter, status int, body jsonError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError maps ledger, model, and planning errors onto HTTP status
// codes.
func writeDomainError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		writeErrorPayload(w, http.StatusConflict, jsonError{
			Error:     "insufficient_stock",
			Details:   err.Error(),
			Available: &insufficient.Available,
		})
	case errors.Is(err, ledger.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledger.ErrDuplicateName):
		WriteJSONError(w, http.StatusConflict, "duplicate_name", err.Error())
	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, model.ErrInvalidProduct),
		errors.Is(err, model.ErrUnknownCategory),
		errors.Is(err, planning.ErrInvalidArgument),
		errors.Is(err, planning.ErrZeroHoldingCost):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
