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

const accountColumns = `user_id, username, balance, xp, level, version, created_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.UserId,
		&a.Username,
		&a.Balance,
		&a.Xp,
		&a.Level,
		&a.Version,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccount retrieves an account by its user ID.
func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	account, err := scanAccount(s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account for user ID %s: %w", userID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// CreateAccount inserts the account and its opening transaction in one database transaction.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account, opening *models.Transaction) (*models.Account, error) {
	if opening != nil && opening.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	level := account.Level
	if level == 0 {
		level = 1
	}

	var created *models.Account
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanAccount(tx.QueryRow(ctx, `
			INSERT INTO accounts (user_id, username, balance, xp, level, version, created_at)
			VALUES ($1, $2, 0, $3, $4, 0, $5)
			RETURNING `+accountColumns,
			account.UserId, account.Username, account.Xp, level, createdAt,
		))
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("account for user ID %s: %w", account.UserId, storage.ErrAccountExists)
			}
			return fmt.Errorf("failed to insert account: %w", err)
		}

		if opening == nil {
			return nil
		}

		entry := *opening
		if entry.Id == "" {
			entry.Id = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = createdAt
		}
		entry.UserId = created.UserId
		entry.Direction = models.EARN
		entry.BalanceAfter = entry.Amount
		if err := insertTransaction(ctx, tx, &entry); err != nil {
			return err
		}
		return tx.QueryRow(ctx, `
			UPDATE accounts SET balance = $1, version = version + 1
			WHERE user_id = $2
			RETURNING balance, version
		`, entry.BalanceAfter, created.UserId).Scan(&created.Balance, &created.Version)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListAccounts retrieves all accounts ordered by user ID.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
