package storage

import (
	"context"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
)

// RewardStore defines the interface for the reward catalog.
type RewardStore interface {
	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)
	ListRewards(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error)
	CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error)
}

// RedemptionStore defines the interface for redeeming rewards and tracking their use.
type RedemptionStore interface {
	// RedeemReward atomically applies the spend transaction tx and creates grant.
	// Either both become visible or neither does. It returns ErrInsufficientFunds
	// or ErrRewardUnavailable without mutating anything.
	RedeemReward(ctx context.Context, tx *models.Transaction, grant *models.UserReward) (*models.UserReward, error)

	// GetUserReward retrieves a redeemed reward by its ID.
	GetUserReward(ctx context.Context, userRewardID string) (*models.UserReward, error)

	// ListUserRewards retrieves a user's redeemed rewards, newest first.
	ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error)

	// MarkUserRewardUsed flips IsUsed from false to true. It returns ErrNotFound
	// for an unknown ID and ErrAlreadyUsed when the reward was already used.
	MarkUserRewardUsed(ctx context.Context, userRewardID string, usedAt time.Time) (*models.UserReward, error)
}
