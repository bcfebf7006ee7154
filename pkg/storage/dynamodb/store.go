package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/coin-ledger/pkg/storage"
)

const (
	transactionsByUserGSI = "user_id-created_at-index"
	userRewardsByUserGSI  = "user_id-redeemed_at-index"

	defaultMaxAttempts = 5

	defaultIndexReadAttempts = 3
	defaultIndexReadBackoff  = 50 * time.Millisecond
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
//
// Balance changes are optimistic: the account item carries a version that every
// write conditions on, and a lost race is retried up to MaxAttempts times.
type Store struct {
	Client                DynamoDBAPI
	AccountsTableName     string
	TransactionsTableName string
	RewardsTableName      string
	UserRewardsTableName  string
	MaxAttempts           int

	// IndexReadAttempts and IndexReadBackoff bound how long a history read
	// waits for the user index to catch up with the account.
	IndexReadAttempts int
	IndexReadBackoff  time.Duration
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, transactionsTable, rewardsTable, userRewardsTable string) *Store {
	return &Store{
		Client:                client,
		AccountsTableName:     accountsTable,
		TransactionsTableName: transactionsTable,
		RewardsTableName:      rewardsTable,
		UserRewardsTableName:  userRewardsTable,
		MaxAttempts:           defaultMaxAttempts,
		IndexReadAttempts:     defaultIndexReadAttempts,
		IndexReadBackoff:      defaultIndexReadBackoff,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) maxAttempts() int {
	if s.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return s.MaxAttempts
}
