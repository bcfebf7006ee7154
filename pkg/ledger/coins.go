package ledger

import (
	"context"

	"github.com/chris/coin-ledger/pkg/events"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// EarnRequest describes coins being credited to an account.
type EarnRequest struct {
	UserID      string
	Amount      int64
	Source      string
	SourceID    *string
	Description string
	// IdempotencyKey, when set, makes retries of the same request return the
	// original transaction instead of crediting twice.
	IdempotencyKey string
}

// SpendRequest describes coins being debited from an account.
type SpendRequest struct {
	UserID         string
	Amount         int64
	Source         string
	SourceID       *string
	Description    string
	IdempotencyKey string
}

// Earn credits coins and returns the committed transaction.
func (s *Service) Earn(ctx context.Context, req EarnRequest) (*models.Transaction, error) {
	return s.apply(ctx, &models.Transaction{
		UserId:         req.UserID,
		Amount:         req.Amount,
		Direction:      models.EARN,
		Source:         req.Source,
		SourceId:       req.SourceID,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// Spend debits coins and returns the committed transaction. It returns
// storage.ErrInsufficientFunds without mutating anything when the balance is too low.
func (s *Service) Spend(ctx context.Context, req SpendRequest) (*models.Transaction, error) {
	return s.apply(ctx, &models.Transaction{
		UserId:         req.UserID,
		Amount:         req.Amount,
		Direction:      models.SPEND,
		Source:         req.Source,
		SourceId:       req.SourceID,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
	})
}

func (s *Service) apply(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	op := string(tx.Direction)
	timer := prometheus.NewTimer(s.cfg.Metrics.OperationDuration.WithLabelValues(op))
	defer timer.ObserveDuration()

	if tx.Amount <= 0 {
		s.reject(ctx, op, storage.ErrInvalidAmount, "user_id", tx.UserId, "amount", tx.Amount)
		return nil, storage.ErrInvalidAmount
	}

	if tx.IdempotencyKey != "" {
		tx.Id = TransactionID(tx.UserId, tx.IdempotencyKey)
	}
	tx.CreatedAt = s.now()

	applied, err := s.store.ApplyTransaction(ctx, tx)
	if err != nil {
		s.reject(ctx, op, err, "user_id", tx.UserId, "amount", tx.Amount)
		return nil, err
	}
	if applied.Replayed {
		s.cfg.Logger.DebugContext(ctx, "idempotent retry returned committed transaction",
			"user_id", applied.UserId, "transaction_id", applied.Id)
		return applied, nil
	}

	s.cfg.Metrics.Transactions.WithLabelValues(string(applied.Direction), applied.Source).Inc()
	s.cfg.Metrics.Coins.WithLabelValues(string(applied.Direction)).Add(float64(applied.Amount))
	s.cfg.Logger.DebugContext(ctx, "transaction applied",
		"user_id", applied.UserId,
		"transaction_id", applied.Id,
		"direction", applied.Direction,
		"amount", applied.Amount,
		"balance_after", applied.BalanceAfter,
	)

	messageType := events.MessageTypeCoinsEarned
	if applied.Direction == models.SPEND {
		messageType = events.MessageTypeCoinsSpent
	}
	s.publish(ctx, events.Message{
		Type: messageType,
		Payload: events.BalanceChangePayload{
			UserID:        applied.UserId,
			TransactionID: applied.Id,
			Source:        applied.Source,
			Change:        applied.Delta(),
			NewBalance:    applied.BalanceAfter,
			OccurredAt:    applied.CreatedAt,
		},
	})

	return applied, nil
}

// History returns an account's transactions newest first. A limit of zero
// selects DefaultHistoryLimit; larger values are capped at MaxHistoryLimit.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	if _, err := s.store.GetAccount(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListTransactionsByUserID(ctx, userID, int32(ClampHistoryLimit(limit)))
}

// ClampHistoryLimit maps a requested history size onto 1..MaxHistoryLimit.
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}
