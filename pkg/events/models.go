package events

import "time"

// MessageType defines the type of a ledger event.
type MessageType string

const (
	MessageTypeCoinsEarned    MessageType = "coinsEarned"
	MessageTypeCoinsSpent     MessageType = "coinsSpent"
	MessageTypeRewardRedeemed MessageType = "rewardRedeemed"
	MessageTypeRewardUsed     MessageType = "rewardUsed"
)

// Message represents a generic ledger event.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// BalanceChangePayload is the payload for coinsEarned and coinsSpent messages.
type BalanceChangePayload struct {
	UserID        string    `json:"user_id"`
	TransactionID string    `json:"transaction_id"`
	Source        string    `json:"source"`
	Change        int64     `json:"change"`
	NewBalance    int64     `json:"new_balance"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// RewardPayload is the payload for rewardRedeemed and rewardUsed messages.
type RewardPayload struct {
	UserID        string    `json:"user_id"`
	UserRewardID  string    `json:"user_reward_id"`
	RewardID      string    `json:"reward_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
