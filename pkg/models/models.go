package models

import (
	"encoding/json"
	"time"
)

// Direction defines whether a transaction adds coins to or removes coins from an account.
type Direction string

const (
	EARN  Direction = "earn"
	SPEND Direction = "spend"
)

// Well-known transaction sources.
const (
	SourceSignup      = "signup"
	SourceVideo       = "video"
	SourceSong        = "song"
	SourceReward      = "reward"
	SourceDaily       = "daily"
	SourceAchievement = "achievement"
	SourceBonus       = "bonus"
)

// Account is a user's coin-bearing identity. Balance is only ever changed by
// the store together with a ledger append.
type Account struct {
	UserId    string    `json:"user_id" dynamodbav:"user_id"`
	Username  string    `json:"username" dynamodbav:"username"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Xp        int64     `json:"xp" dynamodbav:"xp"`
	Level     int32     `json:"level" dynamodbav:"level"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction is an immutable record of one balance-affecting event.
type Transaction struct {
	Id             string    `dynamodbav:"id"`
	UserId         string    `dynamodbav:"user_id"`
	Amount         int64     `dynamodbav:"amount"`
	Direction      Direction `dynamodbav:"direction"`
	Source         string    `dynamodbav:"source"`
	SourceId       *string   `dynamodbav:"source_id,omitempty"`
	Description    string    `dynamodbav:"description"`
	IdempotencyKey string    `dynamodbav:"idempotency_key,omitempty"`
	BalanceAfter   int64     `dynamodbav:"balance_after"`
	CreatedAt      time.Time `dynamodbav:"created_at"`
	// Replayed is set by a store when it returned an already committed
	// transaction for an idempotent retry. It is never persisted.
	Replayed bool `json:"-" dynamodbav:"-"`
}

// Delta returns the signed effect of the transaction on the account balance.
func (t *Transaction) Delta() int64 {
	if t.Direction == SPEND {
		return -t.Amount
	}
	return t.Amount
}

// SamePayload reports whether other describes the same movement of coins.
// It is used to tell an idempotent replay apart from a conflicting reuse of a key.
func (t *Transaction) SamePayload(other *Transaction) bool {
	if t.UserId != other.UserId || t.Amount != other.Amount || t.Direction != other.Direction || t.Source != other.Source {
		return false
	}
	if (t.SourceId == nil) != (other.SourceId == nil) {
		return false
	}
	return t.SourceId == nil || *t.SourceId == *other.SourceId
}

// Reward is a redeemable catalog item.
type Reward struct {
	Id          string          `json:"id" dynamodbav:"id"`
	Name        string          `json:"name" dynamodbav:"name"`
	Description string          `json:"description" dynamodbav:"description"`
	Cost        int64           `json:"cost" dynamodbav:"cost"`
	Category    string          `json:"category" dynamodbav:"category"`
	Type        string          `json:"type" dynamodbav:"type"`
	Data        json.RawMessage `json:"data,omitempty" dynamodbav:"data,omitempty"`
	IsAvailable bool            `json:"is_available" dynamodbav:"is_available"`
	CreatedAt   time.Time       `json:"created_at" dynamodbav:"created_at"`
}

// RewardFilter narrows a reward catalog listing. Nil fields match everything.
type RewardFilter struct {
	Category  *string
	Available *bool
}

// Matches reports whether the reward passes the filter.
func (f RewardFilter) Matches(r *Reward) bool {
	if f.Category != nil && r.Category != *f.Category {
		return false
	}
	if f.Available != nil && r.IsAvailable != *f.Available {
		return false
	}
	return true
}

// UserReward is proof that an account redeemed a reward.
type UserReward struct {
	Id            string     `dynamodbav:"id"`
	UserId        string     `dynamodbav:"user_id"`
	RewardId      string     `dynamodbav:"reward_id"`
	TransactionId string     `dynamodbav:"transaction_id"`
	RedeemedAt    time.Time  `dynamodbav:"redeemed_at"`
	IsUsed        bool       `dynamodbav:"is_used"`
	UsedAt        *time.Time `dynamodbav:"used_at,omitempty"`
}

// Video is a watchable item in the content catalog.
type Video struct {
	Id       string `json:"id" toml:"id"`
	Title    string `json:"title" toml:"title"`
	Category string `json:"category" toml:"category"`
	Url      string `json:"url" toml:"url"`
}

// Song is a listenable item in the content catalog.
type Song struct {
	Id       string `json:"id" toml:"id"`
	Title    string `json:"title" toml:"title"`
	Artist   string `json:"artist" toml:"artist"`
	Category string `json:"category" toml:"category"`
	Url      string `json:"url" toml:"url"`
}
