package mapping

import (
	"encoding/json"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		UserId:    account.UserId,
		Username:  account.Username,
		Balance:   account.Balance,
		Xp:        account.Xp,
		Level:     account.Level,
		CreatedAt: account.CreatedAt,
	}
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:           toUUID(tx.Id),
		UserId:       tx.UserId,
		Amount:       tx.Amount,
		Direction:    api.TransactionDirection(tx.Direction),
		Source:       tx.Source,
		SourceId:     tx.SourceId,
		Description:  tx.Description,
		BalanceAfter: tx.BalanceAfter,
		CreatedAt:    tx.CreatedAt,
	}
}

// ToApiReward converts a domain Reward model to an API Reward model.
// Reward data that is not a JSON object is dropped.
func ToApiReward(reward *models.Reward) *api.Reward {
	out := &api.Reward{
		Id:          reward.Id,
		Name:        reward.Name,
		Description: reward.Description,
		Cost:        reward.Cost,
		Category:    reward.Category,
		Type:        reward.Type,
		IsAvailable: reward.IsAvailable,
		CreatedAt:   reward.CreatedAt,
	}
	if len(reward.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(reward.Data, &data); err == nil && data != nil {
			out.Data = &data
		}
	}
	return out
}

// ToDomainNewReward converts an API NewReward model to a domain Reward model.
// New rewards are available unless the request says otherwise.
func ToDomainNewReward(newReward *api.NewReward) (*models.Reward, error) {
	reward := &models.Reward{
		Name:        newReward.Name,
		Cost:        newReward.Cost,
		Category:    newReward.Category,
		Type:        newReward.Type,
		IsAvailable: true,
	}
	if newReward.Id != nil {
		reward.Id = *newReward.Id
	}
	if newReward.Description != nil {
		reward.Description = *newReward.Description
	}
	if newReward.IsAvailable != nil {
		reward.IsAvailable = *newReward.IsAvailable
	}
	if newReward.Data != nil {
		data, err := json.Marshal(*newReward.Data)
		if err != nil {
			return nil, err
		}
		reward.Data = data
	}
	return reward, nil
}

// ToApiUserReward converts a domain UserReward model to an API UserReward model.
func ToApiUserReward(ur *models.UserReward) *api.UserReward {
	return &api.UserReward{
		Id:            toUUID(ur.Id),
		UserId:        ur.UserId,
		RewardId:      ur.RewardId,
		TransactionId: toUUID(ur.TransactionId),
		RedeemedAt:    ur.RedeemedAt,
		IsUsed:        ur.IsUsed,
		UsedAt:        ur.UsedAt,
	}
}

// ToApiVideo converts a domain Video model to an API Video model.
func ToApiVideo(video *models.Video) *api.Video {
	return &api.Video{
		Id:       video.Id,
		Title:    video.Title,
		Category: video.Category,
		Url:      video.Url,
	}
}

// ToApiSong converts a domain Song model to an API Song model.
func ToApiSong(song *models.Song) *api.Song {
	return &api.Song{
		Id:       song.Id,
		Title:    song.Title,
		Artist:   song.Artist,
		Category: song.Category,
		Url:      song.Url,
	}
}

// IDs are minted as UUIDs by every store; anything else maps to the nil UUID.
func toUUID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return openapi_types.UUID(uuid.Nil)
	}
	return openapi_types.UUID(parsed)
}
