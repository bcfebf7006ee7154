package storage

import (
	"context"

	"github.com/chris/coin-ledger/pkg/models"
)

// TransactionReader defines the interface for reading the ledger.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByUserID retrieves a user's transactions, newest first.
	// A limit of zero or less returns the full history.
	ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error)
}

// TransactionManager defines the single mutation point for balances.
type TransactionManager interface {
	// ApplyTransaction atomically adjusts the account balance by tx.Delta() and
	// appends tx to the ledger, filling in BalanceAfter.
	//
	// If a transaction with tx.Id already exists it is returned with Replayed set
	// when the payload matches, otherwise ErrIdempotencyConflict is returned. A spend that
	// would make the balance negative returns ErrInsufficientFunds and mutates nothing.
	ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
