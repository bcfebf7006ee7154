package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, s *Store, userID string, opening int64) {
	t.Helper()
	var tx *models.Transaction
	if opening > 0 {
		tx = &models.Transaction{Amount: opening, Direction: models.EARN, Source: models.SourceSignup}
	}
	_, err := s.CreateAccount(context.Background(), &models.Account{UserId: userID, Username: userID}, tx)
	require.NoError(t, err)
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s := New()
		opening := &models.Transaction{Amount: 25, Source: models.SourceSignup, Description: "Welcome bonus"}
		account, err := s.CreateAccount(ctx, &models.Account{UserId: "user-1", Username: "AstroBeth"}, opening)

		require.NoError(t, err)
		assert.Equal(t, int64(25), account.Balance)
		assert.False(t, account.CreatedAt.IsZero())

		history, err := s.ListTransactionsByUserID(ctx, "user-1", 0)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.EARN, history[0].Direction)
		assert.Equal(t, int64(25), history[0].BalanceAfter)
	})

	t.Run("Without Opening Balance", func(t *testing.T) {
		s := New()
		account, err := s.CreateAccount(ctx, &models.Account{UserId: "user-1", Balance: 500}, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("Already Exists", func(t *testing.T) {
		s := New()
		newAccount(t, s, "user-1", 0)
		_, err := s.CreateAccount(ctx, &models.Account{UserId: "user-1"}, nil)

		assert.ErrorIs(t, err, storage.ErrAccountExists)
	})
}

func TestGetAccount(t *testing.T) {
	s := New()
	newAccount(t, s, "user-1", 10)

	t.Run("Success", func(t *testing.T) {
		account, err := s.GetAccount(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10), account.Balance)
	})

	t.Run("Returned Copy Is Detached", func(t *testing.T) {
		account, err := s.GetAccount(context.Background(), "user-1")
		require.NoError(t, err)
		account.Balance = 1000

		again, err := s.GetAccount(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(10), again.Balance)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := s.GetAccount(context.Background(), "ghost")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestApplyTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Earn Then Spend", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 25)

		earned, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: 2, Direction: models.EARN, Source: models.SourceVideo})
		require.NoError(t, err)
		assert.Equal(t, int64(27), earned.BalanceAfter)
		assert.NotEmpty(t, earned.Id)

		spent, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: 7, Direction: models.SPEND, Source: models.SourceReward})
		require.NoError(t, err)
		assert.Equal(t, int64(20), spent.BalanceAfter)

		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(20), account.Balance)
	})

	t.Run("Insufficient Funds Mutates Nothing", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 5)

		_, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: 6, Direction: models.SPEND})
		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)

		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(5), account.Balance)
		history, _ := s.ListTransactionsByUserID(ctx, "u1", 0)
		assert.Len(t, history, 1)
	})

	t.Run("Spend Entire Balance", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 5)

		tx, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: 5, Direction: models.SPEND})
		require.NoError(t, err)
		assert.Equal(t, int64(0), tx.BalanceAfter)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 5)

		for _, amount := range []int64{0, -3} {
			_, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: amount, Direction: models.EARN})
			assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		}
	})

	t.Run("Unknown Account", func(t *testing.T) {
		s := New()
		_, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "ghost", Amount: 1, Direction: models.EARN})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Replay Returns Original", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 0)
		tx := &models.Transaction{Id: "fixed", UserId: "u1", Amount: 3, Direction: models.EARN, Source: models.SourceDaily}

		first, err := s.ApplyTransaction(ctx, tx)
		require.NoError(t, err)
		second, err := s.ApplyTransaction(ctx, tx)
		require.NoError(t, err)

		assert.False(t, first.Replayed)
		assert.True(t, second.Replayed)
		second.Replayed = false
		assert.Equal(t, first, second)
		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(3), account.Balance)
	})

	t.Run("Replay With Different Payload", func(t *testing.T) {
		s := New()
		newAccount(t, s, "u1", 0)
		_, err := s.ApplyTransaction(ctx, &models.Transaction{Id: "fixed", UserId: "u1", Amount: 3, Direction: models.EARN, Source: models.SourceDaily})
		require.NoError(t, err)

		_, err = s.ApplyTransaction(ctx, &models.Transaction{Id: "fixed", UserId: "u1", Amount: 4, Direction: models.EARN, Source: models.SourceDaily})
		assert.ErrorIs(t, err, storage.ErrIdempotencyConflict)
	})
}

func TestListTransactionsByUserID(t *testing.T) {
	ctx := context.Background()
	s := New()
	newAccount(t, s, "u1", 10)
	for i := 1; i <= 3; i++ {
		_, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: int64(i), Direction: models.EARN})
		require.NoError(t, err)
	}

	t.Run("Newest First", func(t *testing.T) {
		history, err := s.ListTransactionsByUserID(ctx, "u1", 0)
		require.NoError(t, err)
		require.Len(t, history, 4)
		assert.Equal(t, int64(3), history[0].Amount)
		assert.Equal(t, int64(10), history[3].Amount)
	})

	t.Run("Limit", func(t *testing.T) {
		history, err := s.ListTransactionsByUserID(ctx, "u1", 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, int64(3), history[0].Amount)
		assert.Equal(t, int64(2), history[1].Amount)
	})

	t.Run("Repeatable", func(t *testing.T) {
		first, _ := s.ListTransactionsByUserID(ctx, "u1", 0)
		second, _ := s.ListTransactionsByUserID(ctx, "u1", 0)
		assert.Equal(t, first, second)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		_, err := s.ListTransactionsByUserID(ctx, "ghost", 0)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestConcurrentSpends(t *testing.T) {
	ctx := context.Background()
	s := New()
	newAccount(t, s, "u1", 10)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ApplyTransaction(ctx, &models.Transaction{UserId: "u1", Amount: 8, Direction: models.SPEND})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, storage.ErrInsufficientFunds):
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	account, _ := s.GetAccount(ctx, "u1")
	assert.Equal(t, int64(2), account.Balance)
}

func TestConcurrentMutationsAcrossAccounts(t *testing.T) {
	ctx := context.Background()
	s := New()
	users := []string{"u1", "u2", "u3", "u4"}
	for _, userID := range users {
		newAccount(t, s, userID, 10)
	}
	reward, err := s.CreateReward(ctx, &models.Reward{Name: "Sticker", Cost: 1, IsAvailable: true})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, userID := range users {
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func(userID string, i int) {
				defer wg.Done()
				switch i % 3 {
				case 0:
					_, _ = s.ApplyTransaction(ctx, &models.Transaction{UserId: userID, Amount: 2, Direction: models.EARN})
				case 1:
					_, _ = s.ApplyTransaction(ctx, &models.Transaction{UserId: userID, Amount: 3, Direction: models.SPEND})
				default:
					_, _ = s.RedeemReward(ctx,
						&models.Transaction{UserId: userID, Amount: reward.Cost, Direction: models.SPEND, Source: models.SourceReward},
						&models.UserReward{RewardId: reward.Id})
				}
			}(userID, i)
		}
	}
	wg.Wait()

	for _, userID := range users {
		account, err := s.GetAccount(ctx, userID)
		require.NoError(t, err)
		history, err := s.ListTransactionsByUserID(ctx, userID, 0)
		require.NoError(t, err)

		var sum int64
		for i := range history {
			sum += history[i].Delta()
		}
		assert.Equal(t, sum, account.Balance, userID)
		assert.GreaterOrEqual(t, account.Balance, int64(0), userID)
		assert.Equal(t, history[0].BalanceAfter, account.Balance, userID)
	}
}

func TestRedeemReward(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, opening int64, available bool) *Store {
		s := New()
		newAccount(t, s, "u1", opening)
		_, err := s.CreateReward(ctx, &models.Reward{Id: "r1", Name: "Sticker", Cost: 15, IsAvailable: available})
		require.NoError(t, err)
		return s
	}
	spend := func() *models.Transaction {
		return &models.Transaction{UserId: "u1", Amount: 15, Direction: models.SPEND, Source: models.SourceReward}
	}

	t.Run("Success", func(t *testing.T) {
		s := setup(t, 20, true)
		ur, err := s.RedeemReward(ctx, spend(), &models.UserReward{RewardId: "r1"})

		require.NoError(t, err)
		assert.False(t, ur.IsUsed)
		assert.NotEmpty(t, ur.TransactionId)

		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(5), account.Balance)
		tx, err := s.GetTransaction(ctx, ur.TransactionId)
		require.NoError(t, err)
		assert.Equal(t, int64(15), tx.Amount)
		assert.Equal(t, ur.RedeemedAt, tx.CreatedAt)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		s := setup(t, 10, true)
		_, err := s.RedeemReward(ctx, spend(), &models.UserReward{RewardId: "r1"})

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(10), account.Balance)
		rewards, _ := s.ListUserRewards(ctx, "u1")
		assert.Empty(t, rewards)
	})

	t.Run("Unavailable", func(t *testing.T) {
		s := setup(t, 20, false)
		_, err := s.RedeemReward(ctx, spend(), &models.UserReward{RewardId: "r1"})

		assert.ErrorIs(t, err, storage.ErrRewardUnavailable)
		account, _ := s.GetAccount(ctx, "u1")
		assert.Equal(t, int64(20), account.Balance)
	})

	t.Run("Unknown Reward", func(t *testing.T) {
		s := setup(t, 20, true)
		_, err := s.RedeemReward(ctx, spend(), &models.UserReward{RewardId: "nope"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestMarkUserRewardUsed(t *testing.T) {
	ctx := context.Background()
	s := New()
	newAccount(t, s, "u1", 20)
	_, err := s.CreateReward(ctx, &models.Reward{Id: "r1", Cost: 5, IsAvailable: true})
	require.NoError(t, err)
	ur, err := s.RedeemReward(ctx, &models.Transaction{UserId: "u1", Amount: 5, Direction: models.SPEND}, &models.UserReward{RewardId: "r1"})
	require.NoError(t, err)

	usedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		used, err := s.MarkUserRewardUsed(ctx, ur.Id, usedAt)
		require.NoError(t, err)
		assert.True(t, used.IsUsed)
		assert.Equal(t, usedAt, *used.UsedAt)
	})

	t.Run("Second Call", func(t *testing.T) {
		_, err := s.MarkUserRewardUsed(ctx, ur.Id, usedAt.Add(time.Hour))
		assert.ErrorIs(t, err, storage.ErrAlreadyUsed)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		stored, _ := s.GetUserReward(ctx, ur.Id)
		assert.Equal(t, usedAt, *stored.UsedAt)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := s.MarkUserRewardUsed(ctx, "nope", usedAt)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NotErrorIs(t, err, storage.ErrAlreadyUsed)
	})
}

func TestListRewards(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, r := range []models.Reward{
		{Id: "a", Cost: 10, Category: "avatar", IsAvailable: true},
		{Id: "b", Cost: 20, Category: "theme", IsAvailable: true},
		{Id: "c", Cost: 30, Category: "avatar", IsAvailable: false},
	} {
		r := r
		_, err := s.CreateReward(ctx, &r)
		require.NoError(t, err)
	}

	avatar := "avatar"
	available := true

	all, _ := s.ListRewards(ctx, models.RewardFilter{})
	assert.Len(t, all, 3)

	avatars, _ := s.ListRewards(ctx, models.RewardFilter{Category: &avatar})
	assert.Len(t, avatars, 2)

	both, _ := s.ListRewards(ctx, models.RewardFilter{Category: &avatar, Available: &available})
	require.Len(t, both, 1)
	assert.Equal(t, "a", both[0].Id)
}
