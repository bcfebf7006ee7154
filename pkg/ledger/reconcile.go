package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/coin-ledger/pkg/models"
)

// Discrepancy reports an account whose balance does not equal the sum of its history.
type Discrepancy struct {
	UserID     string `json:"user_id"`
	Balance    int64  `json:"balance"`
	HistorySum int64  `json:"history_sum"`
}

// ReconcileReport summarizes a reconciliation run.
type ReconcileReport struct {
	AccountsChecked int           `json:"accounts_checked"`
	Skipped         []string      `json:"skipped,omitempty"`
	Discrepancies   []Discrepancy `json:"discrepancies"`
}

// Reconcile recomputes every account's balance from its transaction history.
// An account that changes while it is being checked is read again; if it is
// still moving it is reported as skipped rather than as a discrepancy.
// Accounts whose history has not caught up with the balance yet are re-read
// after a short wait.
func (s *Service) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	report := &ReconcileReport{Discrepancies: []Discrepancy{}}
	for i := range accounts {
		d, settled, err := s.checkAccount(ctx, &accounts[i])
		if err != nil {
			return nil, err
		}
		report.AccountsChecked++
		if !settled {
			report.Skipped = append(report.Skipped, accounts[i].UserId)
			continue
		}
		if d != nil {
			report.Discrepancies = append(report.Discrepancies, *d)
			s.cfg.Logger.ErrorContext(ctx, "balance does not match history",
				"user_id", d.UserID, "balance", d.Balance, "history_sum", d.HistorySum)
		}
	}

	s.cfg.Metrics.ReconcileMismatch.Set(float64(len(report.Discrepancies)))
	return report, nil
}

const reconcileAttempts = 4

// checkAccount compares one account with its history. History can trail the
// account on stores with eventually consistent indexes, so a mismatch whose
// newest entry does not carry the account's balance is read again before it
// is reported.
func (s *Service) checkAccount(ctx context.Context, account *models.Account) (*Discrepancy, bool, error) {
	current := account
	var mismatch *Discrepancy
	for attempt := 0; attempt < reconcileAttempts; attempt++ {
		if attempt > 0 {
			if err := s.waitToRecheck(ctx, attempt); err != nil {
				return nil, false, err
			}
		}

		history, err := s.store.ListTransactionsByUserID(ctx, current.UserId, 0)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list transactions for %s: %w", current.UserId, err)
		}

		after, err := s.store.GetAccount(ctx, current.UserId)
		if err != nil {
			return nil, false, fmt.Errorf("failed to re-read account %s: %w", current.UserId, err)
		}
		if after.Version != current.Version {
			current = after
			mismatch = nil
			continue
		}

		var sum int64
		for i := range history {
			sum += history[i].Delta()
		}
		if sum == current.Balance {
			return nil, true, nil
		}

		mismatch = &Discrepancy{UserID: current.UserId, Balance: current.Balance, HistorySum: sum}
		if len(history) > 0 && history[0].BalanceAfter == current.Balance {
			return mismatch, true, nil
		}
		s.cfg.Logger.DebugContext(ctx, "history behind account, re-reading",
			"user_id", current.UserId, "attempt", attempt+1)
	}
	if mismatch != nil {
		return mismatch, true, nil
	}
	return nil, false, nil
}

func (s *Service) waitToRecheck(ctx context.Context, attempt int) error {
	timer := time.NewTimer(s.cfg.ReconcileBackoff * time.Duration(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
