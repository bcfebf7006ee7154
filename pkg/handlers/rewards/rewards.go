package rewards

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/coin-ledger/pkg/api"
	"github.com/chris/coin-ledger/pkg/handlers/respond"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/mapping"
	"github.com/chris/coin-ledger/pkg/models"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RewardsHandler holds the dependencies for the reward catalog and redemptions.
type RewardsHandler struct {
	Ledger *ledger.Service
}

// NewRewardsHandler creates a new RewardsHandler.
func NewRewardsHandler(service *ledger.Service) *RewardsHandler {
	return &RewardsHandler{Ledger: service}
}

func (h *RewardsHandler) ListRewards(w http.ResponseWriter, r *http.Request, params api.ListRewardsParams) {
	rewards, err := h.Ledger.ListRewards(r.Context(), models.RewardFilter{
		Category:  params.Category,
		Available: params.Available,
	})
	if err != nil {
		respond.Error(w, err, "retrieve rewards")
		return
	}

	apiRewards := make([]*api.Reward, len(rewards))
	for i := range rewards {
		apiRewards[i] = mapping.ToApiReward(&rewards[i])
	}
	respond.JSON(w, http.StatusOK, apiRewards)
}

func (h *RewardsHandler) GetRewardById(w http.ResponseWriter, r *http.Request, rewardId api.RewardId) {
	reward, err := h.Ledger.GetReward(r.Context(), rewardId)
	if err != nil {
		respond.Error(w, err, "retrieve reward")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiReward(reward))
}

func (h *RewardsHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var newReward api.CreateRewardJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&newReward); err != nil {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	reward, err := mapping.ToDomainNewReward(&newReward)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, fmt.Sprintf("Invalid reward data: %v", err))
		return
	}

	created, err := h.Ledger.CreateReward(r.Context(), reward)
	if err != nil {
		respond.Error(w, err, "create reward")
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiReward(created))
}

func (h *RewardsHandler) ListUserRewards(w http.ResponseWriter, r *http.Request, userId api.UserId) {
	urs, err := h.Ledger.ListUserRewards(r.Context(), userId)
	if err != nil {
		respond.Error(w, err, "retrieve user rewards")
		return
	}

	apiURs := make([]*api.UserReward, len(urs))
	for i := range urs {
		apiURs[i] = mapping.ToApiUserReward(&urs[i])
	}
	respond.JSON(w, http.StatusOK, apiURs)
}

// RedeemReward spends the reward's cost and grants it in one step.
func (h *RewardsHandler) RedeemReward(w http.ResponseWriter, r *http.Request, userId api.UserId, rewardId api.RewardId) {
	ur, err := h.Ledger.Redeem(r.Context(), userId, rewardId)
	if err != nil {
		respond.Error(w, err, "redeem reward")
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiUserReward(ur))
}

// MarkUserRewardUsed consumes a redeemed reward. Unknown and already used
// rewards are both reported as 404.
func (h *RewardsHandler) MarkUserRewardUsed(w http.ResponseWriter, r *http.Request, userRewardId openapi_types.UUID) {
	ur, err := h.Ledger.MarkUsed(r.Context(), userRewardId.String())
	if err != nil {
		respond.Error(w, err, "use reward")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUserReward(ur))
}
