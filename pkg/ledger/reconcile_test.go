package ledger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftingStore reports a balance that disagrees with the ledger for one user.
type driftingStore struct {
	storage.Storage
	userID string
	drift  int64
}

func (d *driftingStore) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	account, err := d.Storage.GetAccount(ctx, userID)
	if err == nil && userID == d.userID {
		account.Balance += d.drift
	}
	return account, err
}

func (d *driftingStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := d.Storage.ListAccounts(ctx)
	for i := range accounts {
		if accounts[i].UserId == d.userID {
			accounts[i].Balance += d.drift
		}
	}
	return accounts, err
}

// laggingStore hides the newest transaction from the first reads of a user's
// history, like a secondary index that has not caught up with a commit.
type laggingStore struct {
	storage.Storage
	userID string
	stale  int
	reads  int
}

func (l *laggingStore) ListTransactionsByUserID(ctx context.Context, userID string, limit int32) ([]models.Transaction, error) {
	history, err := l.Storage.ListTransactionsByUserID(ctx, userID, limit)
	if err != nil || userID != l.userID {
		return history, err
	}
	l.reads++
	if l.reads <= l.stale && len(history) > 0 {
		return history[1:], nil
	}
	return history, nil
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Clean Ledger", func(t *testing.T) {
		f := newFixture(t, nil)
		f.withBalance(t, "u1", 40)
		f.withBalance(t, "u2", 5)

		report, err := f.svc.Reconcile(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, report.AccountsChecked)
		assert.Empty(t, report.Discrepancies)
		assert.Empty(t, report.Skipped)
	})

	t.Run("Detects Drift", func(t *testing.T) {
		f := newFixture(t, nil)
		f.withBalance(t, "u1", 40)
		f.withBalance(t, "u2", 5)

		svc := NewService(&driftingStore{Storage: f.store, userID: "u2", drift: 3}, nil, f.svc.cfg)
		report, err := svc.Reconcile(ctx)

		require.NoError(t, err)
		require.Len(t, report.Discrepancies, 1)
		assert.Equal(t, Discrepancy{UserID: "u2", Balance: 8, HistorySum: 5}, report.Discrepancies[0])
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ReconcileMismatch))
	})

	t.Run("History Catching Up Is Not A Discrepancy", func(t *testing.T) {
		f := newFixture(t, nil)
		f.withBalance(t, "u1", 27)

		lagging := &laggingStore{Storage: f.store, userID: "u1", stale: 2}
		svc := NewService(lagging, nil, f.svc.cfg)
		report, err := svc.Reconcile(ctx)

		require.NoError(t, err)
		assert.Empty(t, report.Discrepancies)
		assert.Empty(t, report.Skipped)
		assert.Equal(t, 3, lagging.reads)
	})

	t.Run("History That Never Catches Up Is Reported", func(t *testing.T) {
		f := newFixture(t, nil)
		f.withBalance(t, "u1", 27)

		lagging := &laggingStore{Storage: f.store, userID: "u1", stale: reconcileAttempts}
		svc := NewService(lagging, nil, f.svc.cfg)
		report, err := svc.Reconcile(ctx)

		require.NoError(t, err)
		require.Len(t, report.Discrepancies, 1)
		assert.Equal(t, Discrepancy{UserID: "u1", Balance: 27, HistorySum: 25}, report.Discrepancies[0])
		assert.Equal(t, reconcileAttempts, lagging.reads)
	})

	t.Run("Logs Each Discrepancy Once", func(t *testing.T) {
		f := newFixture(t, nil)
		f.withBalance(t, "u1", 40)

		var logs bytes.Buffer
		cfg := f.svc.cfg
		cfg.Logger = slog.New(slog.NewJSONHandler(&logs, nil))
		svc := NewService(&driftingStore{Storage: f.store, userID: "u1", drift: -2}, nil, cfg)
		_, err := svc.Reconcile(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(logs.String(), "balance does not match history"))
	})
}
