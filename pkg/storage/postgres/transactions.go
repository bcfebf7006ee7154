package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, user_id, amount, direction, source, source_id, description, idempotency_key, balance_after, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		t              models.Transaction
		direction      string
		idempotencyKey *string
	)
	err := row.Scan(
		&t.Id,
		&t.UserId,
		&t.Amount,
		&direction,
		&t.Source,
		&t.SourceId,
		&t.Description,
		&idempotencyKey,
		&t.BalanceAfter,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Direction = models.Direction(direction)
	if idempotencyKey != nil {
		t.IdempotencyKey = *idempotencyKey
	}
	return &t, nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	var idempotencyKey *string
	if t.IdempotencyKey != "" {
		idempotencyKey = &t.IdempotencyKey
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, amount, direction, source, source_id, description, idempotency_key, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		t.Id,
		t.UserId,
		t.Amount,
		string(t.Direction),
		t.Source,
		t.SourceId,
		t.Description,
		idempotencyKey,
		t.BalanceAfter,
		t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", t.Id, storage.ErrIdempotencyConflict)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	t, err := scanTransaction(s.pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, txID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByUserID retrieves a user's transactions, newest first.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	var lim *int32
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2
	`, userID, lim)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by user ID: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query transactions by user ID: %w", err)
	}

	if len(transactions) == 0 {
		if _, err := s.GetAccount(ctx, userID); err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

// ApplyTransaction locks the account row, checks the balance and appends the transaction.
func (s *Store) ApplyTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	if t.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	var applied *models.Transaction
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		applied, err = applyLocked(ctx, tx, t, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

// applyLocked runs inside tx. It takes the account row lock before looking for
// a replay so that two callers racing with the same ID serialize on the row.
// When replay is false an existing transaction with the same ID is a conflict.
func applyLocked(ctx context.Context, tx pgx.Tx, t *models.Transaction, replay bool) (*models.Transaction, error) {
	var balance int64
	err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE user_id = $1 FOR UPDATE`, t.UserId).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account for user ID %s: %w", t.UserId, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	if t.Id != "" {
		existing, err := scanTransaction(tx.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, t.Id))
		switch {
		case err == nil:
			if !replay || !existing.SamePayload(t) {
				return nil, fmt.Errorf("transaction %s: %w", t.Id, storage.ErrIdempotencyConflict)
			}
			existing.Replayed = true
			return existing, nil
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("failed to look up transaction: %w", err)
		}
	}

	newBalance := balance + t.Delta()
	if newBalance < 0 {
		return nil, storage.ErrInsufficientFunds
	}

	applied := *t
	if applied.Id == "" {
		applied.Id = uuid.NewString()
	}
	if applied.CreatedAt.IsZero() {
		applied.CreatedAt = time.Now().UTC()
	}
	applied.BalanceAfter = newBalance

	if err := insertTransaction(ctx, tx, &applied); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE accounts SET balance = $1, version = version + 1 WHERE user_id = $2`, newBalance, applied.UserId)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return &applied, nil
}
