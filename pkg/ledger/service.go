// Package ledger implements the coin economy: earning, spending, reward
// redemption and the reconciliation audit. All balance mutations go through
// the storage layer's atomic operations; this package owns validation,
// idempotency keys, events and metrics.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chris/coin-ledger/pkg/events"
	"github.com/chris/coin-ledger/pkg/metrics"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/google/uuid"
)

const (
	DefaultStartingBalance = 25
	DefaultHistoryLimit    = 50
	MaxHistoryLimit        = 500

	// PlayReward is the number of coins credited for finishing a video or song.
	PlayReward = 2

	DefaultReconcileBackoff = 250 * time.Millisecond
)

// ErrValidation is returned for requests that are malformed before any amount is considered.
var ErrValidation = errors.New("invalid request")

// idempotencyNamespace scopes the name-based UUIDs derived from idempotency keys.
var idempotencyNamespace = uuid.MustParse("6f0b7c1e-2a44-4c55-9d1e-3b8f7a9c0d21")

// Config holds the service's tunables and collaborators.
type Config struct {
	StartingBalance  int64
	Metrics          *metrics.Ledger
	Logger           *slog.Logger
	Now              func() time.Time
	// ReconcileBackoff is the base wait before an account is re-read during
	// reconciliation. It grows linearly with each attempt.
	ReconcileBackoff time.Duration
}

// Service is the entry point for every balance-affecting operation.
type Service struct {
	store     storage.Storage
	publisher events.Publisher
	cfg       Config
}

// NewService creates a new Service. A nil publisher disables events.
func NewService(store storage.Storage, publisher events.Publisher, cfg Config) *Service {
	if publisher == nil {
		publisher = events.NoOpPublisher{}
	}
	if cfg.StartingBalance < 0 {
		cfg.StartingBalance = 0
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ReconcileBackoff <= 0 {
		cfg.ReconcileBackoff = DefaultReconcileBackoff
	}
	return &Service{store: store, publisher: publisher, cfg: cfg}
}

// TransactionID derives the transaction ID for a caller-supplied idempotency key.
// The same user and key always map to the same ID.
func TransactionID(userID, idempotencyKey string) string {
	return uuid.NewSHA1(idempotencyNamespace, []byte(userID+"/"+idempotencyKey)).String()
}

func (s *Service) now() time.Time {
	return s.cfg.Now().UTC()
}

// publish announces a committed change. Failures are logged and never undo the commit.
func (s *Service) publish(ctx context.Context, message events.Message) {
	if err := s.publisher.Publish(ctx, message); err != nil {
		s.cfg.Logger.WarnContext(ctx, "failed to publish ledger event", "type", message.Type, "error", err)
	}
}

// reject records an expected rejection. Anything that is not one of the
// sentinel outcomes is a storage failure and logged as an error.
func (s *Service) reject(ctx context.Context, op string, err error, attrs ...any) {
	reason := rejectionReason(err)
	if reason == "" {
		s.cfg.Logger.ErrorContext(ctx, "ledger operation failed", append([]any{"operation", op, "error", err}, attrs...)...)
		return
	}
	s.cfg.Metrics.Rejections.WithLabelValues(reason).Inc()
	s.cfg.Logger.InfoContext(ctx, "ledger operation rejected", append([]any{"operation", op, "reason", reason}, attrs...)...)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, storage.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, storage.ErrRewardUnavailable):
		return "reward_unavailable"
	case errors.Is(err, storage.ErrAlreadyUsed):
		return "already_used"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, storage.ErrAccountExists):
		return "account_exists"
	case errors.Is(err, ErrValidation):
		return "invalid_request"
	default:
		return ""
	}
}
