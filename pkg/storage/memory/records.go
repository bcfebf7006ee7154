package memory

import "github.com/chris/coin-ledger/pkg/models"

// Records are stored by value and copied on the way out so callers can never
// mutate store state through a returned pointer.

type accountRecord struct {
	account models.Account
	txIDs   []string // append order
}

type transactionRecord struct {
	tx models.Transaction
}

type rewardRecord struct {
	reward models.Reward
}

type userRewardRecord struct {
	userReward models.UserReward
}

func copyTransaction(tx models.Transaction) *models.Transaction {
	if tx.SourceId != nil {
		id := *tx.SourceId
		tx.SourceId = &id
	}
	return &tx
}

func copyReward(r models.Reward) *models.Reward {
	if r.Data != nil {
		r.Data = append([]byte(nil), r.Data...)
	}
	return &r
}

func copyUserReward(ur models.UserReward) *models.UserReward {
	if ur.UsedAt != nil {
		t := *ur.UsedAt
		ur.UsedAt = &t
	}
	return &ur
}
