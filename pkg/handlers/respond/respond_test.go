package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrAlreadyUsed, http.StatusNotFound},
		{fmt.Errorf("account with ID u1: %w", storage.ErrNotFound), http.StatusNotFound},
		{storage.ErrInvalidAmount, http.StatusBadRequest},
		{fmt.Errorf("%w: reward name is required", ledger.ErrValidation), http.StatusBadRequest},
		{storage.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{storage.ErrRewardUnavailable, http.StatusUnprocessableEntity},
		{storage.ErrIdempotencyConflict, http.StatusConflict},
		{storage.ErrAccountExists, http.StatusConflict},
		{storage.ErrConcurrentUpdate, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestError_HidesStorageFailures(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, errors.New("dial tcp 10.0.0.1:5432: connection refused"), "redeem reward")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body api.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Failed to redeem reward", body.Message)
}

func TestError_ExposesRejections(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, storage.ErrInsufficientFunds, "redeem reward")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var body api.Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, storage.ErrInsufficientFunds.Error(), body.Message)
}
