package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/jackc/pgx/v5"
)

const userRewardColumns = `id, user_id, reward_id, transaction_id, redeemed_at, is_used, used_at`

func scanUserReward(row pgx.Row) (*models.UserReward, error) {
	var ur models.UserReward
	err := row.Scan(
		&ur.Id,
		&ur.UserId,
		&ur.RewardId,
		&ur.TransactionId,
		&ur.RedeemedAt,
		&ur.IsUsed,
		&ur.UsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ur, nil
}

// GetUserReward retrieves a redeemed reward by its ID.
func (s *Store) GetUserReward(ctx context.Context, userRewardID string) (*models.UserReward, error) {
	ur, err := scanUserReward(s.pool.QueryRow(ctx, `SELECT `+userRewardColumns+` FROM user_rewards WHERE id = $1`, userRewardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user reward: %w", err)
	}
	return ur, nil
}

// ListUserRewards retrieves a user's redeemed rewards, newest first.
func (s *Store) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userRewardColumns+`
		FROM user_rewards
		WHERE user_id = $1
		ORDER BY redeemed_at DESC, seq DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user rewards: %w", err)
	}
	defer rows.Close()

	userRewards := []models.UserReward{}
	for rows.Next() {
		ur, err := scanUserReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user reward: %w", err)
		}
		userRewards = append(userRewards, *ur)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list user rewards: %w", err)
	}
	return userRewards, nil
}

// MarkUserRewardUsed flips is_used with a conditional update; zero rows
// affected is resolved into ErrNotFound or ErrAlreadyUsed.
func (s *Store) MarkUserRewardUsed(ctx context.Context, userRewardID string, usedAt time.Time) (*models.UserReward, error) {
	ur, err := scanUserReward(s.pool.QueryRow(ctx, `
		UPDATE user_rewards SET is_used = TRUE, used_at = $2
		WHERE id = $1 AND NOT is_used
		RETURNING `+userRewardColumns,
		userRewardID, usedAt,
	))
	if err == nil {
		return ur, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to mark user reward as used: %w", err)
	}

	if _, err := s.GetUserReward(ctx, userRewardID); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrAlreadyUsed)
}
