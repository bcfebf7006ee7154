package dynamodb

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/coin-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/mock"
)

func newTestStore(client *mocks.DynamoDBAPI) *Store {
	return New(client, "accounts", "transactions", "rewards", "user_rewards")
}

// canceled builds a TransactionCanceledException with the given per-item codes.
func canceled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, code := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	return &types.TransactionCanceledException{CancellationReasons: reasons}
}

func getFrom(table string) interface{} {
	return mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return aws.ToString(in.TableName) == table
	})
}
