package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// GetAccount retrieves an account by its user ID.
func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("account for user ID %s: %w", userID, storage.ErrNotFound)
	}
	account := rec.account
	return &account, nil
}

// CreateAccount creates an account, optionally seeding it with an opening transaction.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account, opening *models.Transaction) (*models.Account, error) {
	if opening != nil && opening.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.UserId]; exists {
		return nil, fmt.Errorf("account for user ID %s: %w", account.UserId, storage.ErrAccountExists)
	}

	created := *account
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.now().UTC()
	}
	created.Balance = 0
	created.Version = 0
	rec := &accountRecord{account: created}

	if opening != nil {
		tx := *opening
		if tx.Id == "" {
			tx.Id = uuid.NewString()
		}
		if _, exists := s.transactions[tx.Id]; exists {
			return nil, fmt.Errorf("opening transaction %s: %w", tx.Id, storage.ErrIdempotencyConflict)
		}
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = created.CreatedAt
		}
		tx.UserId = created.UserId
		tx.Direction = models.EARN
		rec.account.Balance = tx.Amount
		rec.account.Version = 1
		tx.BalanceAfter = rec.account.Balance
		s.transactions[tx.Id] = &transactionRecord{tx: tx}
		rec.txIDs = append(rec.txIDs, tx.Id)
	}

	s.accounts[created.UserId] = rec
	result := rec.account
	return &result, nil
}

// ListAccounts retrieves all accounts ordered by user ID.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.Account, 0, len(s.accounts))
	for _, rec := range s.accounts {
		accounts = append(accounts, rec.account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].UserId < accounts[j].UserId })
	return accounts, nil
}
