package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// sortKeyLayout is RFC 3339 with a fixed nine-digit fraction, so index sort
// keys written with it order lexically the same way they order in time.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z07:00"

func sortKey(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(sortKeyLayout)}
}

// marshalTransaction encodes tx with created_at in sortKeyLayout.
func marshalTransaction(tx *models.Transaction) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, err
	}
	av["created_at"] = sortKey(tx.CreatedAt)
	return av, nil
}

// Positions of the items in a balance-changing TransactWriteItems call.
const (
	itemAccount = iota
	itemTransaction
	itemUserReward
	itemRewardCheck
)

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.TransactionsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListTransactionsByUserID queries the user index newest first. The index is
// eventually consistent, so the result is checked against a consistent read of
// the account and queried again while the newest entry lags behind it.
func (s *Store) ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	attempts := s.IndexReadAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		transactions, err := s.queryTransactions(ctx, userID, limit)
		if err != nil {
			return nil, err
		}

		// Also distinguishes an account with no history from a missing account.
		account, err := s.GetAccount(ctx, userID)
		if err != nil {
			return nil, err
		}
		if historyCaughtUp(transactions, account) || attempt >= attempts {
			return transactions, nil
		}

		timer := time.NewTimer(s.IndexReadBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func historyCaughtUp(transactions []models.Transaction, account *models.Account) bool {
	if len(transactions) == 0 {
		return account.Version == 0
	}
	return transactions[0].BalanceAfter == account.Balance
}

// queryTransactions follows LastEvaluatedKey until limit items have been collected.
func (s *Store) queryTransactions(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(transactionsByUserGSI),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
	}

	transactions := []models.Transaction{}
	for {
		if limit > 0 {
			input.Limit = aws.Int32(limit - int32(len(transactions)))
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for transactions by user ID: %w", err)
		}

		var page []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		transactions = append(transactions, page...)

		if len(result.LastEvaluatedKey) == 0 || (limit > 0 && int32(len(transactions)) >= limit) {
			return transactions, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// ApplyTransaction adjusts the account balance and writes the transaction in
// one TransactWriteItems call, retrying when the account version moved.
func (s *Store) ApplyTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}
	applied, _, err := s.commit(ctx, tx, nil)
	return applied, err
}

// commit runs the optimistic read-check-write loop shared by ApplyTransaction
// and RedeemReward. When grant is non-nil the user reward put and a condition
// check on the reward's availability join the same write.
func (s *Store) commit(ctx context.Context, tx *models.Transaction, grant *models.UserReward) (*models.Transaction, *models.UserReward, error) {
	pending := *tx
	callerID := pending.Id != ""
	if !callerID {
		pending.Id = uuid.NewString()
	}

	var userReward *models.UserReward
	if grant != nil {
		ur := *grant
		if ur.Id == "" {
			ur.Id = uuid.NewString()
		}
		ur.UserId = pending.UserId
		ur.TransactionId = pending.Id
		ur.IsUsed = false
		ur.UsedAt = nil
		userReward = &ur
	}

	for attempt := 0; attempt < s.maxAttempts(); attempt++ {
		if callerID {
			existing, err := s.GetTransaction(ctx, pending.Id)
			switch {
			case err == nil:
				if grant != nil || !existing.SamePayload(&pending) {
					return nil, nil, fmt.Errorf("transaction %s: %w", pending.Id, storage.ErrIdempotencyConflict)
				}
				existing.Replayed = true
				return existing, nil, nil
			case !errors.Is(err, storage.ErrNotFound):
				return nil, nil, err
			}
		}

		account, err := s.GetAccount(ctx, pending.UserId)
		if err != nil {
			return nil, nil, err
		}

		balance := account.Balance + pending.Delta()
		if balance < 0 {
			return nil, nil, storage.ErrInsufficientFunds
		}

		pending.BalanceAfter = balance
		if tx.CreatedAt.IsZero() {
			pending.CreatedAt = time.Now().UTC()
		}

		items, err := s.balanceWriteItems(account, &pending, userReward)
		if err != nil {
			return nil, nil, err
		}

		_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
		if err == nil {
			return &pending, userReward, nil
		}

		c, ok := cancellationOf(err)
		if !ok {
			return nil, nil, fmt.Errorf("failed to execute balance transaction: %w", err)
		}
		switch {
		case c.index == itemRewardCheck:
			return nil, nil, storage.ErrRewardUnavailable
		case c.index == itemTransaction && !callerID:
			return nil, nil, fmt.Errorf("transaction %s: %w", pending.Id, storage.ErrIdempotencyConflict)
		case c.index == itemUserReward:
			return nil, nil, fmt.Errorf("user reward %s already exists: %w", userReward.Id, err)
		}
		// The account version moved, or a concurrent caller wrote the same
		// idempotent transaction first. Either way the next attempt re-reads.
	}

	return nil, nil, fmt.Errorf("account for user ID %s: %w", pending.UserId, storage.ErrConcurrentUpdate)
}

func (s *Store) balanceWriteItems(account *models.Account, tx *models.Transaction, ur *models.UserReward) ([]types.TransactWriteItem, error) {
	txAV, err := marshalTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	items := []types.TransactWriteItem{
		itemAccount: {
			Update: &types.Update{
				TableName: aws.String(s.AccountsTableName),
				Key: map[string]types.AttributeValue{
					"user_id": &types.AttributeValueMemberS{Value: account.UserId},
				},
				UpdateExpression:    aws.String("SET balance = :balance, version = version + :inc"),
				ConditionExpression: aws.String("version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":balance": &types.AttributeValueMemberN{Value: strconv.FormatInt(tx.BalanceAfter, 10)},
					":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(account.Version, 10)},
					":inc":     &types.AttributeValueMemberN{Value: "1"},
				},
			},
		},
		itemTransaction: {
			Put: &types.Put{
				TableName:           aws.String(s.TransactionsTableName),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	if ur == nil {
		return items, nil
	}

	ur.RedeemedAt = tx.CreatedAt
	urAV, err := attributevalue.MarshalMap(ur)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user reward: %w", err)
	}
	urAV["redeemed_at"] = sortKey(ur.RedeemedAt)

	items = append(items,
		types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.UserRewardsTableName),
				Item:                urAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
		types.TransactWriteItem{
			ConditionCheck: &types.ConditionCheck{
				TableName: aws.String(s.RewardsTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: ur.RewardId},
				},
				ConditionExpression: aws.String("attribute_exists(id) AND is_available = :true"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true": &types.AttributeValueMemberBOOL{Value: true},
				},
			},
		},
	)
	return items, nil
}
