package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
)

// CreateAccount opens an account funded with the configured starting balance.
// The starting balance is recorded as a signup transaction so the account's
// history always sums to its balance.
func (s *Service) CreateAccount(ctx context.Context, userID, username string) (*models.Account, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrValidation)
	}

	account := &models.Account{
		UserId:    userID,
		Username:  username,
		Level:     1,
		CreatedAt: s.now(),
	}

	var opening *models.Transaction
	if s.cfg.StartingBalance > 0 {
		opening = &models.Transaction{
			UserId:      userID,
			Amount:      s.cfg.StartingBalance,
			Direction:   models.EARN,
			Source:      models.SourceSignup,
			Description: "Welcome bonus",
			CreatedAt:   account.CreatedAt,
		}
	}

	created, err := s.store.CreateAccount(ctx, account, opening)
	if err != nil {
		s.reject(ctx, "create_account", err, "user_id", userID)
		return nil, err
	}

	s.cfg.Logger.DebugContext(ctx, "account created", "user_id", userID, "balance", created.Balance)
	return created, nil
}

// GetAccount retrieves an account.
func (s *Service) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	return s.store.GetAccount(ctx, userID)
}

// GetBalance returns an account's current balance.
func (s *Service) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := s.store.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// ListAccounts retrieves every account.
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.store.ListAccounts(ctx)
}

// EnsureAccount returns the account for userID, creating it when missing.
func (s *Service) EnsureAccount(ctx context.Context, userID, username string) (*models.Account, error) {
	account, err := s.store.GetAccount(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	account, err = s.CreateAccount(ctx, userID, username)
	if errors.Is(err, storage.ErrAccountExists) {
		return s.store.GetAccount(ctx, userID)
	}
	return account, err
}
