package ledger

import (
	"context"
	"fmt"

	"github.com/chris/coin-ledger/pkg/events"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// ListRewards returns the reward catalog narrowed by filter.
func (s *Service) ListRewards(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	return s.store.ListRewards(ctx, filter)
}

// GetReward retrieves a catalog entry.
func (s *Service) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	return s.store.GetReward(ctx, rewardID)
}

// CreateReward adds a catalog entry.
func (s *Service) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if reward.Name == "" {
		return nil, fmt.Errorf("%w: reward name is required", ErrValidation)
	}
	if reward.Cost <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = s.now()
	}
	return s.store.CreateReward(ctx, reward)
}

// Redeem spends the reward's cost and grants it to the user as one atomic
// unit. On any rejection no coins move and no user reward exists.
func (s *Service) Redeem(ctx context.Context, userID, rewardID string) (*models.UserReward, error) {
	timer := prometheus.NewTimer(s.cfg.Metrics.OperationDuration.WithLabelValues("redeem"))
	defer timer.ObserveDuration()

	reward, err := s.store.GetReward(ctx, rewardID)
	if err != nil {
		s.reject(ctx, "redeem", err, "user_id", userID, "reward_id", rewardID)
		return nil, err
	}
	if !reward.IsAvailable {
		s.reject(ctx, "redeem", storage.ErrRewardUnavailable, "user_id", userID, "reward_id", rewardID)
		return nil, storage.ErrRewardUnavailable
	}

	sourceID := reward.Id
	spend := &models.Transaction{
		UserId:      userID,
		Amount:      reward.Cost,
		Direction:   models.SPEND,
		Source:      models.SourceReward,
		SourceId:    &sourceID,
		Description: fmt.Sprintf("Redeemed: %s", reward.Name),
		CreatedAt:   s.now(),
	}

	ur, err := s.store.RedeemReward(ctx, spend, &models.UserReward{UserId: userID, RewardId: reward.Id})
	if err != nil {
		s.reject(ctx, "redeem", err, "user_id", userID, "reward_id", rewardID, "cost", reward.Cost)
		return nil, err
	}

	s.cfg.Metrics.Redemptions.Inc()
	s.cfg.Metrics.Transactions.WithLabelValues(string(models.SPEND), models.SourceReward).Inc()
	s.cfg.Metrics.Coins.WithLabelValues(string(models.SPEND)).Add(float64(reward.Cost))
	s.cfg.Logger.DebugContext(ctx, "reward redeemed",
		"user_id", userID,
		"reward_id", reward.Id,
		"user_reward_id", ur.Id,
		"transaction_id", ur.TransactionId,
	)

	s.publish(ctx, events.Message{
		Type: events.MessageTypeRewardRedeemed,
		Payload: events.RewardPayload{
			UserID:        userID,
			UserRewardID:  ur.Id,
			RewardID:      reward.Id,
			TransactionID: ur.TransactionId,
			OccurredAt:    ur.RedeemedAt,
		},
	})

	return ur, nil
}

// MarkUsed consumes a redeemed reward. A second call returns
// storage.ErrAlreadyUsed, which also matches storage.ErrNotFound.
func (s *Service) MarkUsed(ctx context.Context, userRewardID string) (*models.UserReward, error) {
	ur, err := s.store.MarkUserRewardUsed(ctx, userRewardID, s.now())
	if err != nil {
		s.reject(ctx, "mark_used", err, "user_reward_id", userRewardID)
		return nil, err
	}

	s.cfg.Metrics.RewardsUsed.Inc()
	s.publish(ctx, events.Message{
		Type: events.MessageTypeRewardUsed,
		Payload: events.RewardPayload{
			UserID:       ur.UserId,
			UserRewardID: ur.Id,
			RewardID:     ur.RewardId,
			OccurredAt:   *ur.UsedAt,
		},
	})
	return ur, nil
}

// ListUserRewards returns the rewards a user has redeemed, newest first.
func (s *Service) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	if _, err := s.store.GetAccount(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListUserRewards(ctx, userID)
}
