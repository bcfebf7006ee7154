package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/coin-ledger/pkg/bootstrap"
	"github.com/chris/coin-ledger/pkg/config"
	"github.com/chris/coin-ledger/pkg/ledger"
)

var (
	service *ledger.Service
	logger  *slog.Logger
)

func init() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger = cfg.NewLogger()
	slog.SetDefault(logger)

	app, err := bootstrap.New(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Error("failed to initialise dependencies", "error", err)
		os.Exit(1)
	}
	service = app.Service
}

// HandleRequest is triggered by an EventBridge Schedule. It fails the
// invocation when any balance disagrees with its history so the alarm fires.
// Each discrepancy is logged by the service.
func HandleRequest(ctx context.Context) (*ledger.ReconcileReport, error) {
	logger.InfoContext(ctx, "starting ledger reconciliation")

	report, err := service.Reconcile(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "reconciliation failed", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "ledger reconciliation finished",
		"accounts_checked", report.AccountsChecked,
		"skipped", len(report.Skipped),
		"discrepancies", len(report.Discrepancies),
	)

	if len(report.Discrepancies) > 0 {
		return report, fmt.Errorf("%d accounts failed reconciliation", len(report.Discrepancies))
	}
	return report, nil
}

func main() {
	lambda.Start(HandleRequest)
}
