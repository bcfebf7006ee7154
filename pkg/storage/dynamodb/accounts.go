package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

// GetAccount retrieves an account from DynamoDB by its user ID.
func (s *Store) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account user ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.AccountsTableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get account from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("account for user ID %s: %w", userID, storage.ErrNotFound)
	}

	var account models.Account
	if err := attributevalue.UnmarshalMap(result.Item, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	return &account, nil
}

// CreateAccount creates an account record, writing the opening transaction in
// the same TransactWriteItems call when one is given.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account, opening *models.Transaction) (*models.Account, error) {
	created := *account
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	created.Balance = 0
	created.Version = 0

	if opening == nil {
		accountAV, err := attributevalue.MarshalMap(created)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal account: %w", err)
		}

		_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(s.AccountsTableName),
			Item:                accountAV,
			ConditionExpression: aws.String("attribute_not_exists(user_id)"),
		})
		if err != nil {
			if isConditionalCheckFailed(err) {
				return nil, fmt.Errorf("account for user ID %s: %w", created.UserId, storage.ErrAccountExists)
			}
			return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
		}
		return &created, nil
	}

	if opening.Amount <= 0 {
		return nil, storage.ErrInvalidAmount
	}

	tx := *opening
	if tx.Id == "" {
		tx.Id = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = created.CreatedAt
	}
	tx.UserId = created.UserId
	tx.Direction = models.EARN
	tx.BalanceAfter = tx.Amount
	created.Balance = tx.Amount
	created.Version = 1

	accountAV, err := attributevalue.MarshalMap(created)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}
	txAV, err := marshalTransaction(&tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal opening transaction: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.AccountsTableName),
					Item:                accountAV,
					ConditionExpression: aws.String("attribute_not_exists(user_id)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if c, ok := cancellationOf(err); ok {
			switch c.index {
			case 0:
				return nil, fmt.Errorf("account for user ID %s: %w", created.UserId, storage.ErrAccountExists)
			case 1:
				return nil, fmt.Errorf("opening transaction %s: %w", tx.Id, storage.ErrIdempotencyConflict)
			}
		}
		return nil, fmt.Errorf("failed to create account in DynamoDB: %w", err)
	}

	return &created, nil
}

// ListAccounts retrieves all accounts from DynamoDB.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(s.AccountsTableName),
		ConsistentRead: aws.Bool(true),
	}

	accounts := []models.Account{}
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accounts table: %w", err)
		}

		var page []models.Account
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
		}
		accounts = append(accounts, page...)

		if len(result.LastEvaluatedKey) == 0 {
			return accounts, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
