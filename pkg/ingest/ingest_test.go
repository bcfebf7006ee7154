package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/chris/coin-ledger/pkg/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type earnerFunc func(ctx context.Context, req ledger.EarnRequest) (*models.Transaction, error)

func (f earnerFunc) Earn(ctx context.Context, req ledger.EarnRequest) (*models.Transaction, error) {
	return f(ctx, req)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(id, body string) lambdaevents.SQSMessage {
	return lambdaevents.SQSMessage{MessageId: id, Body: body}
}

func TestHandleSQSEvent_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	svc := ledger.NewService(memory.New(), nil, ledger.Config{StartingBalance: 25, Logger: discard()})
	_, err := svc.CreateAccount(ctx, "user-1", "AstroBeth")
	require.NoError(t, err)

	p := NewEarnProcessor(svc, 100, discard())
	event := lambdaevents.SQSEvent{Records: []lambdaevents.SQSMessage{
		record("m-1", `{"userId":"user-1","amount":5,"source":"achievement","description":"First quiz"}`),
	}}

	// SQS delivers at least once; the redelivery must not credit again.
	for i := 0; i < 2; i++ {
		resp, err := p.HandleSQSEvent(ctx, event)
		require.NoError(t, err)
		assert.Empty(t, resp.BatchItemFailures)
	}

	balance, err := svc.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
}

func TestHandleSQSEvent_IdempotencyKey(t *testing.T) {
	var keys []string
	p := NewEarnProcessor(earnerFunc(func(ctx context.Context, req ledger.EarnRequest) (*models.Transaction, error) {
		keys = append(keys, req.IdempotencyKey)
		return &models.Transaction{Id: "tx"}, nil
	}), 100, discard())

	_, err := p.HandleSQSEvent(context.Background(), lambdaevents.SQSEvent{Records: []lambdaevents.SQSMessage{
		record("m-1", `{"userId":"u","amount":1,"source":"daily"}`),
		record("m-2", `{"userId":"u","amount":1,"source":"daily","idempotencyKey":"daily-2024-03-01"}`),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"m-1", "daily-2024-03-01"}, keys)
}

func TestHandleSQSEvent_Failures(t *testing.T) {
	storageDown := errors.New("throughput exceeded")
	var earned []string
	p := NewEarnProcessor(earnerFunc(func(ctx context.Context, req ledger.EarnRequest) (*models.Transaction, error) {
		earned = append(earned, req.UserID)
		switch req.UserID {
		case "ghost":
			return nil, storage.ErrNotFound
		case "flaky":
			return nil, storageDown
		case "zero":
			return nil, storage.ErrInvalidAmount
		}
		return &models.Transaction{Id: "tx"}, nil
	}), 100, discard())

	resp, err := p.HandleSQSEvent(context.Background(), lambdaevents.SQSEvent{Records: []lambdaevents.SQSMessage{
		record("ok", `{"userId":"u","amount":1,"source":"bonus"}`),
		record("malformed", `{"userId":`),
		record("bad-source", `{"userId":"u","amount":1,"source":"reward"}`),
		record("unknown-user", `{"userId":"ghost","amount":1,"source":"bonus"}`),
		record("zero", `{"userId":"zero","amount":0,"source":"bonus"}`),
		record("over-ceiling", `{"userId":"u","amount":100000,"source":"bonus"}`),
		record("over-play-reward", `{"userId":"u","amount":3,"source":"video"}`),
		record("retry", `{"userId":"flaky","amount":1,"source":"bonus"}`),
	}})
	require.NoError(t, err)

	require.Len(t, resp.BatchItemFailures, 1)
	assert.Equal(t, "retry", resp.BatchItemFailures[0].ItemIdentifier)
	assert.Equal(t, []string{"u", "ghost", "flaky"}, earned)
}

func TestHandleSQSEvent_AmountCeiling(t *testing.T) {
	ctx := context.Background()
	svc := ledger.NewService(memory.New(), nil, ledger.Config{StartingBalance: 25, Logger: discard()})
	_, err := svc.CreateAccount(ctx, "user-1", "AstroBeth")
	require.NoError(t, err)

	p := NewEarnProcessor(svc, 100, discard())
	resp, err := p.HandleSQSEvent(ctx, lambdaevents.SQSEvent{Records: []lambdaevents.SQSMessage{
		record("m-1", `{"userId":"user-1","amount":100000,"source":"bonus"}`),
		record("m-2", `{"userId":"user-1","amount":100,"source":"bonus"}`),
		record("m-3", `{"userId":"user-1","amount":2,"source":"song"}`),
	}})
	require.NoError(t, err)
	assert.Empty(t, resp.BatchItemFailures)

	balance, err := svc.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(127), balance)
}
