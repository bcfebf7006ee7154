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

const rewardColumns = `id, name, description, cost, category, type, data, is_available, created_at`

func scanReward(row pgx.Row) (*models.Reward, error) {
	var (
		r    models.Reward
		data []byte
	)
	err := row.Scan(
		&r.Id,
		&r.Name,
		&r.Description,
		&r.Cost,
		&r.Category,
		&r.Type,
		&data,
		&r.IsAvailable,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		r.Data = data
	}
	return &r, nil
}

// GetReward retrieves a reward by its ID.
func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	r, err := scanReward(s.pool.QueryRow(ctx, `SELECT `+rewardColumns+` FROM rewards WHERE id = $1`, rewardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reward with ID %s: %w", rewardID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return r, nil
}

// ListRewards retrieves rewards matching the filter in creation order.
func (s *Store) ListRewards(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+rewardColumns+`
		FROM rewards
		WHERE ($1::text IS NULL OR category = $1)
		  AND ($2::boolean IS NULL OR is_available = $2)
		ORDER BY created_at, id
	`, filter.Category, filter.Available)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	rewards := []models.Reward{}
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

// CreateReward inserts a reward into the catalog.
func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if reward.Cost <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	id := reward.Id
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := reward.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var data []byte
	if len(reward.Data) > 0 {
		data = reward.Data
	}

	created, err := scanReward(s.pool.QueryRow(ctx, `
		INSERT INTO rewards (id, name, description, cost, category, type, data, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+rewardColumns,
		id, reward.Name, reward.Description, reward.Cost, reward.Category, reward.Type, data, reward.IsAvailable, createdAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("reward with ID %s already exists", id)
		}
		return nil, fmt.Errorf("failed to insert reward: %w", err)
	}
	return created, nil
}

// RedeemReward spends and grants inside one database transaction. The reward
// row is share-locked so it cannot be withdrawn between the check and the commit.
func (s *Store) RedeemReward(ctx context.Context, t *models.Transaction, grant *models.UserReward) (*models.UserReward, error) {
	if t.Amount <= 0 || t.Direction != models.SPEND {
		return nil, storage.ErrInvalidAmount
	}

	var userReward *models.UserReward
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var available bool
		err := tx.QueryRow(ctx, `SELECT is_available FROM rewards WHERE id = $1 FOR SHARE`, grant.RewardId).Scan(&available)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("reward with ID %s: %w", grant.RewardId, storage.ErrNotFound)
			}
			return fmt.Errorf("failed to lock reward: %w", err)
		}
		if !available {
			return storage.ErrRewardUnavailable
		}

		applied, err := applyLocked(ctx, tx, t, false)
		if err != nil {
			return err
		}

		ur := *grant
		if ur.Id == "" {
			ur.Id = uuid.NewString()
		}
		ur.UserId = applied.UserId
		ur.TransactionId = applied.Id
		ur.RedeemedAt = applied.CreatedAt
		ur.IsUsed = false
		ur.UsedAt = nil

		_, err = tx.Exec(ctx, `
			INSERT INTO user_rewards (id, user_id, reward_id, transaction_id, redeemed_at, is_used)
			VALUES ($1, $2, $3, $4, $5, FALSE)
		`, ur.Id, ur.UserId, ur.RewardId, ur.TransactionId, ur.RedeemedAt)
		if err != nil {
			return fmt.Errorf("failed to insert user reward: %w", err)
		}
		userReward = &ur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userReward, nil
}
