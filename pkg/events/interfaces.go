package events

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Publisher defines the interface for announcing committed ledger changes.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}

// SQSAPI is the subset of the SQS client used by the SQSPublisher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}
