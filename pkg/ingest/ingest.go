// Package ingest credits coins from queued earn requests.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
)

// EarnMessage is the body of a queued earn request.
type EarnMessage struct {
	UserID      string  `json:"userId"`
	Amount      int64   `json:"amount"`
	Source      string  `json:"source"`
	SourceID    *string `json:"sourceId,omitempty"`
	Description string  `json:"description,omitempty"`
	// IdempotencyKey defaults to the SQS message ID.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Earner is the part of the ledger the processor needs.
type Earner interface {
	Earn(ctx context.Context, req ledger.EarnRequest) (*models.Transaction, error)
}

// EarnProcessor applies SQS batches of earn requests.
type EarnProcessor struct {
	Ledger Earner
	Logger *slog.Logger
	// MaxEarnAmount caps a single queued earn, as it does on the HTTP API.
	MaxEarnAmount int64
}

// NewEarnProcessor creates a new EarnProcessor.
func NewEarnProcessor(earner Earner, maxEarnAmount int64, logger *slog.Logger) *EarnProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &EarnProcessor{Ledger: earner, Logger: logger, MaxEarnAmount: maxEarnAmount}
}

var allowedSources = map[string]bool{
	models.SourceVideo:       true,
	models.SourceSong:        true,
	models.SourceDaily:       true,
	models.SourceAchievement: true,
	models.SourceBonus:       true,
}

// maxAmount returns the largest amount a message from source may credit.
func (p *EarnProcessor) maxAmount(source string) int64 {
	switch source {
	case models.SourceVideo, models.SourceSong:
		return ledger.PlayReward
	}
	return p.MaxEarnAmount
}

// errPermanent marks messages that will never succeed and must not be retried.
var errPermanent = errors.New("permanent failure")

// HandleSQSEvent processes every record and reports only the ones worth
// retrying as batch item failures. Redelivered records are safe to apply
// again because each one carries an idempotency key.
func (p *EarnProcessor) HandleSQSEvent(ctx context.Context, event lambdaevents.SQSEvent) (lambdaevents.SQSEventResponse, error) {
	var response lambdaevents.SQSEventResponse
	for _, record := range event.Records {
		err := p.process(ctx, record)
		switch {
		case err == nil:
		case errors.Is(err, errPermanent):
			p.Logger.ErrorContext(ctx, "dropping earn message", "message_id", record.MessageId, "error", err)
		default:
			p.Logger.WarnContext(ctx, "earn message will be retried", "message_id", record.MessageId, "error", err)
			response.BatchItemFailures = append(response.BatchItemFailures, lambdaevents.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}
	return response, nil
}

func (p *EarnProcessor) process(ctx context.Context, record lambdaevents.SQSMessage) error {
	var msg EarnMessage
	if err := json.Unmarshal([]byte(record.Body), &msg); err != nil {
		return fmt.Errorf("%w: failed to unmarshal earn message: %v", errPermanent, err)
	}
	if msg.UserID == "" || !allowedSources[msg.Source] {
		return fmt.Errorf("%w: invalid user %q or source %q", errPermanent, msg.UserID, msg.Source)
	}
	if limit := p.maxAmount(msg.Source); msg.Amount <= 0 || msg.Amount > limit {
		return fmt.Errorf("%w: amount %d outside 1..%d for source %q", errPermanent, msg.Amount, limit, msg.Source)
	}
	if msg.IdempotencyKey == "" {
		msg.IdempotencyKey = record.MessageId
	}

	tx, err := p.Ledger.Earn(ctx, ledger.EarnRequest{
		UserID:         msg.UserID,
		Amount:         msg.Amount,
		Source:         msg.Source,
		SourceID:       msg.SourceID,
		Description:    msg.Description,
		IdempotencyKey: msg.IdempotencyKey,
	})
	if err != nil {
		if isRejection(err) {
			return fmt.Errorf("%w: %v", errPermanent, err)
		}
		return err
	}

	p.Logger.DebugContext(ctx, "earn message applied", "message_id", record.MessageId, "transaction_id", tx.Id)
	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, storage.ErrInvalidAmount) ||
		errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, storage.ErrIdempotencyConflict) ||
		errors.Is(err, ledger.ErrValidation)
}
