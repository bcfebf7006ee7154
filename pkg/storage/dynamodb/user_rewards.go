package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
)

// GetUserReward retrieves a redeemed reward from DynamoDB by its ID.
func (s *Store) GetUserReward(ctx context.Context, userRewardID string) (*models.UserReward, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": userRewardID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user reward ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.UserRewardsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user reward from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrNotFound)
	}

	var ur models.UserReward
	if err := attributevalue.UnmarshalMap(result.Item, &ur); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user reward: %w", err)
	}

	return &ur, nil
}

// ListUserRewards queries the user index for a user's redeemed rewards, newest first.
func (s *Store) ListUserRewards(ctx context.Context, userID string) ([]models.UserReward, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.UserRewardsTableName),
		IndexName:              aws.String(userRewardsByUserGSI),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	}

	userRewards := []models.UserReward{}
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for user rewards by user ID: %w", err)
		}

		var page []models.UserReward
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user rewards: %w", err)
		}
		userRewards = append(userRewards, page...)

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sort.SliceStable(userRewards, func(i, j int) bool {
		return userRewards[i].RedeemedAt.After(userRewards[j].RedeemedAt)
	})
	return userRewards, nil
}

// MarkUserRewardUsed conditionally flips is_used. A failed condition is
// resolved into ErrNotFound or ErrAlreadyUsed with a follow-up read.
func (s *Store) MarkUserRewardUsed(ctx context.Context, userRewardID string, usedAt time.Time) (*models.UserReward, error) {
	usedAtAV, err := attributevalue.Marshal(usedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal used_at: %w", err)
	}

	result, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UserRewardsTableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: userRewardID},
		},
		UpdateExpression:    aws.String("SET is_used = :true, used_at = :used_at"),
		ConditionExpression: aws.String("attribute_exists(id) AND is_used = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":    &types.AttributeValueMemberBOOL{Value: true},
			":false":   &types.AttributeValueMemberBOOL{Value: false},
			":used_at": usedAtAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if !isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("failed to mark user reward as used: %w", err)
		}
		if _, getErr := s.GetUserReward(ctx, userRewardID); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("user reward with ID %s: %w", userRewardID, storage.ErrAlreadyUsed)
	}

	var ur models.UserReward
	if err := attributevalue.UnmarshalMap(result.Attributes, &ur); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user reward: %w", err)
	}

	return &ur, nil
}
