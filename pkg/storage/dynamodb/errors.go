package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	reasonConditionalCheckFailed = "ConditionalCheckFailed"
	reasonTransactionConflict    = "TransactionConflict"
)

// cancellation describes why a TransactWriteItems call was cancelled.
type cancellation struct {
	// index is the position of the first item whose condition failed, or -1.
	index int
	// conflict is set when another transaction was writing the same item.
	conflict bool
}

// cancellationOf inspects err for a TransactionCanceledException.
func cancellationOf(err error) (cancellation, bool) {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return cancellation{}, false
	}

	c := cancellation{index: -1}
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil {
			continue
		}
		switch *reason.Code {
		case reasonConditionalCheckFailed:
			if c.index < 0 {
				c.index = i
			}
		case reasonTransactionConflict:
			c.conflict = true
		}
	}
	return c, true
}

func isConditionalCheckFailed(err error) bool {
	var condCheckFailed *types.ConditionalCheckFailedException
	return errors.As(err, &condCheckFailed)
}
