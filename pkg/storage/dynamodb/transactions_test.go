package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/chris/coin-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyTransaction(t *testing.T) {
	account := models.Account{UserId: "user1", Balance: 20, Version: 4}
	accountAV, _ := attributevalue.MarshalMap(account)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			update := in.TransactItems[0].Update
			return len(in.TransactItems) == 2 &&
				update != nil &&
				update.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN).Value == "4" &&
				update.ExpressionAttributeValues[":balance"].(*types.AttributeValueMemberN).Value == "12"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		store := newTestStore(mockClient)
		tx, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 8, Direction: models.SPEND})

		require.NoError(t, err)
		assert.Equal(t, int64(12), tx.BalanceAfter)
		assert.NotEmpty(t, tx.Id)
		assert.False(t, tx.CreatedAt.IsZero())
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()

		store := newTestStore(mockClient)
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 21, Direction: models.SPEND})

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
		mockClient.AssertExpectations(t)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)

		store := newTestStore(mockClient)
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 0, Direction: models.EARN})

		assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		mockClient.AssertExpectations(t)
	})

	t.Run("Retries After Version Conflict", func(t *testing.T) {
		moved := account
		moved.Balance = 30
		moved.Version = 5
		movedAV, _ := attributevalue.MarshalMap(moved)

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled("ConditionalCheckFailed", "None")).Once()
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: movedAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		store := newTestStore(mockClient)
		tx, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 8, Direction: models.SPEND})

		require.NoError(t, err)
		assert.Equal(t, int64(22), tx.BalanceAfter)
		mockClient.AssertExpectations(t)
	})

	t.Run("Gives Up After Max Attempts", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Times(2)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled("TransactionConflict", "None")).Times(2)

		store := newTestStore(mockClient)
		store.MaxAttempts = 2
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 1, Direction: models.EARN})

		assert.ErrorIs(t, err, storage.ErrConcurrentUpdate)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		store := newTestStore(mockClient)
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 1, Direction: models.EARN})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute balance transaction")
		mockClient.AssertExpectations(t)
	})

	t.Run("Replay Returns Stored Transaction", func(t *testing.T) {
		stored := models.Transaction{Id: "fixed", UserId: "user1", Amount: 3, Direction: models.EARN, Source: models.SourceDaily, BalanceAfter: 23}
		storedAV, _ := attributevalue.MarshalMap(stored)

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("transactions")).Return(&dynamodb.GetItemOutput{Item: storedAV}, nil).Once()

		store := newTestStore(mockClient)
		tx, err := store.ApplyTransaction(context.Background(), &models.Transaction{Id: "fixed", UserId: "user1", Amount: 3, Direction: models.EARN, Source: models.SourceDaily})

		require.NoError(t, err)
		assert.Equal(t, int64(23), tx.BalanceAfter)
		assert.True(t, tx.Replayed)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
		mockClient.AssertExpectations(t)
	})

	t.Run("Replay With Different Payload", func(t *testing.T) {
		stored := models.Transaction{Id: "fixed", UserId: "user1", Amount: 3, Direction: models.EARN, Source: models.SourceDaily}
		storedAV, _ := attributevalue.MarshalMap(stored)

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("transactions")).Return(&dynamodb.GetItemOutput{Item: storedAV}, nil).Once()

		store := newTestStore(mockClient)
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{Id: "fixed", UserId: "user1", Amount: 50, Direction: models.EARN, Source: models.SourceDaily})

		assert.ErrorIs(t, err, storage.ErrIdempotencyConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestListTransactionsByUserID(t *testing.T) {
	userID := "user1"
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer, _ := marshalTransaction(&models.Transaction{Id: "t2", UserId: userID, Amount: 2, Direction: models.EARN, BalanceAfter: 3, CreatedAt: base.Add(time.Minute)})
	older, _ := marshalTransaction(&models.Transaction{Id: "t1", UserId: userID, Amount: 1, Direction: models.EARN, BalanceAfter: 1, CreatedAt: base})
	accountAV, _ := attributevalue.MarshalMap(models.Account{UserId: userID, Balance: 3, Version: 2})

	t.Run("Follows Pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey == nil })).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newer}, LastEvaluatedKey: newer}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey != nil })).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{older}}, nil).Once()
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()

		store := newTestStore(mockClient)
		transactions, err := store.ListTransactionsByUserID(context.Background(), userID, 0)

		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, "t2", transactions[0].Id)
		assert.Equal(t, "t1", transactions[1].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Stops At Limit", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return *in.Limit == 1 })).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newer}, LastEvaluatedKey: newer}, nil).Once()
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()

		store := newTestStore(mockClient)
		transactions, err := store.ListTransactionsByUserID(context.Background(), userID, 1)

		require.NoError(t, err)
		assert.Len(t, transactions, 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Waits For Index To Catch Up", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{older}}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newer, older}}, nil).Once()
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Twice()

		store := newTestStore(mockClient)
		store.IndexReadBackoff = time.Millisecond
		transactions, err := store.ListTransactionsByUserID(context.Background(), userID, 0)

		require.NoError(t, err)
		require.Len(t, transactions, 2)
		assert.Equal(t, int64(3), transactions[0].BalanceAfter)
		mockClient.AssertExpectations(t)
	})

	t.Run("Returns Lagging History After Last Attempt", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{older}}, nil).Times(3)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Times(3)

		store := newTestStore(mockClient)
		store.IndexReadBackoff = time.Millisecond
		transactions, err := store.ListTransactionsByUserID(context.Background(), userID, 0)

		require.NoError(t, err)
		assert.Len(t, transactions, 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Unknown Account", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil).Once()
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{}, nil).Once()

		store := newTestStore(mockClient)
		_, err := store.ListTransactionsByUserID(context.Background(), "ghost", 0)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestTransactionSortKey(t *testing.T) {
	second := time.Date(2024, 3, 1, 9, 30, 5, 0, time.UTC)
	times := []time.Time{
		second,
		second.Add(100 * time.Millisecond),
		second.Add(120 * time.Millisecond),
		second.Add(time.Second),
	}

	t.Run("Orders Mixed Fraction Widths", func(t *testing.T) {
		for i := 1; i < len(times); i++ {
			prev := sortKey(times[i-1]).(*types.AttributeValueMemberS).Value
			next := sortKey(times[i]).(*types.AttributeValueMemberS).Value
			assert.Less(t, prev, next)
		}
		assert.Equal(t, "2024-03-01T09:30:05.000000000Z", sortKey(second).(*types.AttributeValueMemberS).Value)
	})

	t.Run("Written By ApplyTransaction", func(t *testing.T) {
		accountAV, _ := attributevalue.MarshalMap(models.Account{UserId: "user1", Balance: 20, Version: 1})
		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(in *dynamodb.TransactWriteItemsInput) bool {
			createdAt, ok := in.TransactItems[itemTransaction].Put.Item["created_at"].(*types.AttributeValueMemberS)
			return ok && createdAt.Value == "2024-03-01T09:30:05.100000000Z"
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		store := newTestStore(mockClient)
		_, err := store.ApplyTransaction(context.Background(), &models.Transaction{UserId: "user1", Amount: 1, Direction: models.EARN, CreatedAt: times[1]})

		require.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Newest Item Decodes With Limit One", func(t *testing.T) {
		newest, err := marshalTransaction(&models.Transaction{Id: "t3", UserId: "user1", Amount: 3, BalanceAfter: 23, CreatedAt: times[2]})
		require.NoError(t, err)
		accountAV, _ := attributevalue.MarshalMap(models.Account{UserId: "user1", Balance: 23, Version: 3})

		mockClient := new(mocks.DynamoDBAPI)
		mockClient.On("GetItem", mock.Anything, getFrom("accounts")).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			return *in.Limit == 1 && !*in.ScanIndexForward
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{newest}}, nil).Once()

		store := newTestStore(mockClient)
		transactions, err := store.ListTransactionsByUserID(context.Background(), "user1", 1)

		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "t3", transactions[0].Id)
		assert.True(t, times[2].Equal(transactions[0].CreatedAt))
		mockClient.AssertExpectations(t)
	})
}
