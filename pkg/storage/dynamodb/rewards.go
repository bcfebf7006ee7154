package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// GetReward retrieves a reward from DynamoDB by its ID.
func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": rewardID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.RewardsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reward from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("reward with ID %s: %w", rewardID, storage.ErrNotFound)
	}

	var reward models.Reward
	if err := attributevalue.UnmarshalMap(result.Item, &reward); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reward: %w", err)
	}

	return &reward, nil
}

// ListRewards scans the rewards table, pushing the filter down as a FilterExpression.
func (s *Store) ListRewards(ctx context.Context, filter models.RewardFilter) ([]models.Reward, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.RewardsTableName),
	}

	var conditions []string
	values := map[string]types.AttributeValue{}
	if filter.Category != nil {
		conditions = append(conditions, "category = :category")
		values[":category"] = &types.AttributeValueMemberS{Value: *filter.Category}
	}
	if filter.Available != nil {
		conditions = append(conditions, "is_available = :available")
		values[":available"] = &types.AttributeValueMemberBOOL{Value: *filter.Available}
	}
	if len(conditions) > 0 {
		input.FilterExpression = aws.String(strings.Join(conditions, " AND "))
		input.ExpressionAttributeValues = values
	}

	rewards := []models.Reward{}
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rewards table: %w", err)
		}

		var page []models.Reward
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rewards: %w", err)
		}
		rewards = append(rewards, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].CreatedAt.Before(rewards[j].CreatedAt)
	})
	return rewards, nil
}

// CreateReward creates a new reward record in DynamoDB.
func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if reward.Cost <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	created := *reward
	if created.Id == "" {
		created.Id = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	rewardAV, err := attributevalue.MarshalMap(created)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.RewardsTableName),
		Item:                rewardAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"), // Prevent overwriting existing rewards.
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("reward with ID %s already exists", created.Id)
		}
		return nil, fmt.Errorf("failed to create reward in DynamoDB: %w", err)
	}

	return &created, nil
}

// RedeemReward checks the reward up front for a precise error, then commits the
// spend, the grant and a re-check of availability in one TransactWriteItems call.
func (s *Store) RedeemReward(ctx context.Context, tx *models.Transaction, grant *models.UserReward) (*models.UserReward, error) {
	if tx.Amount <= 0 || tx.Direction != models.SPEND {
		return nil, storage.ErrInvalidAmount
	}

	reward, err := s.GetReward(ctx, grant.RewardId)
	if err != nil {
		return nil, err
	}
	if !reward.IsAvailable {
		return nil, storage.ErrRewardUnavailable
	}

	_, userReward, err := s.commit(ctx, tx, grant)
	if err != nil {
		return nil, err
	}
	return userReward, nil
}
