// Package respond writes JSON responses and maps ledger errors onto HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/storage"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Message writes an api.Error body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, api.Error{Message: message})
}

// Error writes err with the status returned by StatusFor. Storage failures
// are reported as "Failed to <action>" without their cause.
func Error(w http.ResponseWriter, err error, action string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Message(w, status, fmt.Sprintf("Failed to %s", action))
		return
	}
	Message(w, status, err.Error())
}

// StatusFor maps a ledger error onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidAmount), errors.Is(err, ledger.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrInsufficientFunds), errors.Is(err, storage.ErrRewardUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrIdempotencyConflict), errors.Is(err, storage.ErrAccountExists), errors.Is(err, storage.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
