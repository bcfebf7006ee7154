package coins

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/handlers/respond"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/mapping"
	"github.com/chris/coin-ledger/pkg/models"
)

// CoinsHandler holds the dependencies for earning coins and reading history.
type CoinsHandler struct {
	Ledger *ledger.Service
	// MaxEarnAmount caps a single client-initiated earn.
	MaxEarnAmount int64
}

// NewCoinsHandler creates a new CoinsHandler.
func NewCoinsHandler(service *ledger.Service, maxEarnAmount int64) *CoinsHandler {
	return &CoinsHandler{Ledger: service, MaxEarnAmount: maxEarnAmount}
}

// EarnCoins credits an achievement, daily or bonus award.
func (h *CoinsHandler) EarnCoins(w http.ResponseWriter, r *http.Request, userId api.UserId, params api.EarnCoinsParams) {
	var body api.EarnCoinsJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	switch body.Source {
	case api.Achievement, api.Daily, api.Bonus:
	default:
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid source %q", body.Source))
		return
	}
	if body.Amount <= 0 || body.Amount > h.MaxEarnAmount {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Amount must be between 1 and %d", h.MaxEarnAmount))
		return
	}

	req := ledger.EarnRequest{
		UserID:      userId,
		Amount:      body.Amount,
		Source:      string(body.Source),
		SourceID:    body.SourceId,
		Description: describeEarn(body),
	}
	if params.IdempotencyKey != nil {
		req.IdempotencyKey = *params.IdempotencyKey
	}

	tx, err := h.Ledger.Earn(r.Context(), req)
	if err != nil {
		respond.Error(w, err, "earn coins")
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(tx))
}

// ListTransactions returns an account's history, newest first.
func (h *CoinsHandler) ListTransactions(w http.ResponseWriter, r *http.Request, userId api.UserId, params api.ListTransactionsParams) {
	limit := 0
	if params.Limit != nil {
		if *params.Limit < 1 {
			respond.Message(w, http.StatusBadRequest, "limit must be positive")
			return
		}
		limit = *params.Limit
	}

	txs, err := h.Ledger.History(r.Context(), userId, limit)
	if err != nil {
		respond.Error(w, err, "retrieve transactions")
		return
	}

	apiTxs := make([]*api.Transaction, len(txs))
	for i := range txs {
		apiTxs[i] = mapping.ToApiTransaction(&txs[i])
	}
	respond.JSON(w, http.StatusOK, apiTxs)
}

func describeEarn(body api.EarnRequest) string {
	if body.Description != nil && *body.Description != "" {
		return *body.Description
	}
	switch string(body.Source) {
	case models.SourceDaily:
		return "Daily reward"
	case models.SourceAchievement:
		return "Achievement unlocked"
	default:
		return "Bonus coins"
	}
}
