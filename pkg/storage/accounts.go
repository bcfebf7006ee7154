package storage

import (
	"context"

	"github.com/chris/coin-ledger/pkg/models"
)

// AccountStore defines the interface for the account registry.
// There is deliberately no method that writes a balance on its own.
type AccountStore interface {
	// GetAccount retrieves an account by its user ID.
	GetAccount(ctx context.Context, userID string) (*models.Account, error)

	// CreateAccount creates an account. When opening is non-nil the account's
	// balance is set to opening.Amount and the opening transaction is appended
	// in the same atomic write.
	CreateAccount(ctx context.Context, account *models.Account, opening *models.Transaction) (*models.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
