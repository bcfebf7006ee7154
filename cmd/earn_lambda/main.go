package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/coin-ledger/pkg/bootstrap"
	"github.com/chris/coin-ledger/pkg/config"
	"github.com/chris/coin-ledger/pkg/ingest"
)

var processor *ingest.EarnProcessor

func init() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	// Initialize dependencies once per container.
	app, err := bootstrap.New(context.Background(), cfg, logger, nil)
	if err != nil {
		logger.Error("failed to initialise dependencies", "error", err)
		os.Exit(1)
	}
	processor = ingest.NewEarnProcessor(app.Service, cfg.MaxEarnAmount, logger)
}

func main() {
	lambda.Start(processor.HandleSQSEvent)
}
