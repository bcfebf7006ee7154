package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// GetReward retrieves a reward by its ID.
func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.rewards[rewardID]
	if !ok {
		return nil, fmt.Errorf("reward with ID %s: %w", rewardID, storage.ErrNotFound)
	}
	return copyReward(rec.reward), nil
}

// ListRewards retrieves rewards matching the filter in creation order.
func (s *Store) ListRewards(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rewards := []models.Reward{}
	for _, id := range s.rewardOrder {
		r := s.rewards[id].reward
		if filter.Matches(&r) {
			rewards = append(rewards, *copyReward(r))
		}
	}
	return rewards, nil
}

// CreateReward adds a reward to the catalog.
func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if reward.Cost <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := *copyReward(*reward)
	if created.Id == "" {
		created.Id = uuid.NewString()
	}
	if _, exists := s.rewards[created.Id]; exists {
		return nil, fmt.Errorf("reward with ID %s already exists", created.Id)
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.now().UTC()
	}
	s.rewards[created.Id] = &rewardRecord{reward: created}
	s.rewardOrder = append(s.rewardOrder, created.Id)
	return copyReward(created), nil
}

// RedeemReward applies the spend and records the grant in one critical section.
func (s *Store) RedeemReward(ctx context.Context, tx *models.Transaction, grant *models.UserReward) (*models.UserReward, error) {
	if tx.Amount <= 0 || tx.Direction != models.SPEND {
		return nil, storage.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reward, ok := s.rewards[grant.RewardId]
	if !ok {
		return nil, fmt.Errorf("reward with ID %s: %w", grant.RewardId, storage.ErrNotFound)
	}
	if !reward.reward.IsAvailable {
		return nil, storage.ErrRewardUnavailable
	}

	// applyLocked mutates nothing on failure, and nothing below can fail.
	applied, err := s.applyLocked(tx, false)
	if err != nil {
		return nil, err
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

	s.userRewards[ur.Id] = &userRewardRecord{userReward: ur}
	s.userRewardsByUser[ur.UserId] = append(s.userRewardsByUser[ur.UserId], ur.Id)
	return copyUserReward(ur), nil
}

// GetUserReward retrieves a redeemed reward by its ID.
func (s *Store) GetUserReward(ctx context.Context, userRewardID string) (*models.UserReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.userRewards[userRewardID]
	if !ok {
		return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrNotFound)
	}
	return copyUserReward(rec.userReward), nil
}

// ListUserRewards retrieves a user's redeemed rewards, newest first.
func (s *Store) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.userRewardsByUser[userID]
	userRewards := make([]models.UserReward, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		userRewards = append(userRewards, *copyUserReward(s.userRewards[ids[i]].userReward))
	}
	return userRewards, nil
}

// MarkUserRewardUsed flips a user reward to used exactly once.
func (s *Store) MarkUserRewardUsed(ctx context.Context, userRewardID string, usedAt time.Time) (*models.UserReward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.userRewards[userRewardID]
	if !ok {
		return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrNotFound)
	}
	if rec.userReward.IsUsed {
		return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrAlreadyUsed)
	}
	rec.userReward.IsUsed = true
	rec.userReward.UsedAt = &usedAt
	return copyUserReward(rec.userReward), nil
}
