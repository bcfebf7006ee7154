package memory

import (
	"context"
	"fmt"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// GetTransaction retrieves a transaction by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.transactions[txID]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
	}
	return copyTransaction(rec.tx), nil
}

// ListTransactionsByUserID retrieves a user's transactions, newest first.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("account for user ID %s: %w", userID, storage.ErrNotFound)
	}

	n := len(rec.txIDs)
	if limit > 0 && int(limit) < n {
		n = int(limit)
	}
	transactions := make([]models.Transaction, 0, n)
	for i := len(rec.txIDs) - 1; i >= 0 && len(transactions) < n; i-- {
		transactions = append(transactions, *copyTransaction(s.transactions[rec.txIDs[i]].tx))
	}
	return transactions, nil
}

// ApplyTransaction adjusts the balance and appends the transaction under the store lock.
func (s *Store) ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.applyLocked(tx, true)
	if err != nil {
		return nil, err
	}
	return copyTransaction(*applied), nil
}

// applyLocked performs the balance check and append. The caller holds s.mu
// for writing. When replay is false an existing
// transaction with the same ID is a conflict rather than a no-op.
func (s *Store) applyLocked(tx *models.Transaction, replay bool) (*models.Transaction, error) {
	if tx.Id != "" {
		if existing, ok := s.transactions[tx.Id]; ok {
			if !replay || !existing.tx.SamePayload(tx) {
				return nil, fmt.Errorf("transaction %s: %w", tx.Id, storage.ErrIdempotencyConflict)
			}
			replayed := existing.tx
			replayed.Replayed = true
			return &replayed, nil
		}
	}

	rec, ok := s.accounts[tx.UserId]
	if !ok {
		return nil, fmt.Errorf("account for user ID %s: %w", tx.UserId, storage.ErrNotFound)
	}

	balance := rec.account.Balance + tx.Delta()
	if balance < 0 {
		return nil, storage.ErrInsufficientFunds
	}

	applied := *tx
	if applied.Id == "" {
		applied.Id = uuid.NewString()
	}
	if applied.CreatedAt.IsZero() {
		applied.CreatedAt = s.now().UTC()
	}
	applied.BalanceAfter = balance

	rec.account.Balance = balance
	rec.account.Version++
	txRec := &transactionRecord{tx: applied}
	s.transactions[applied.Id] = txRec
	rec.txIDs = append(rec.txIDs, applied.Id)

	return &txRec.tx, nil
}
