// Package bootstrap wires configuration into a ready ledger service.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/coin-ledger/pkg/catalog"
	"github.com/chris/coin-ledger/pkg/config"
	"github.com/chris/coin-ledger/pkg/events"
	"github.com/chris/coin-ledger/pkg/ledger"
	"github.com/chris/coin-ledger/pkg/metrics"
	"github.com/chris/coin-ledger/pkg/storage"
	dydbstore "github.com/chris/coin-ledger/pkg/storage/dynamodb"
	"github.com/chris/coin-ledger/pkg/storage/memory"
	pgstore "github.com/chris/coin-ledger/pkg/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// Demo account seeded in memory mode.
const (
	DemoUserID   = "user-1"
	DemoUsername = "AstroBeth"
)

// App holds the wired dependencies of a running binary.
type App struct {
	Store     storage.Storage
	Publisher events.Publisher
	Catalog   *catalog.Catalog
	Service   *ledger.Service

	closers []func()
}

// Close releases connections opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// New opens the configured store and publisher and builds the ledger service.
// A nil registerer disables metrics export.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	app := &App{}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	app.Catalog = cat

	if err := app.openStore(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.openPublisher(ctx, cfg); err != nil {
		app.Close()
		return nil, err
	}

	m := metrics.Nop()
	if reg != nil {
		m = metrics.New(reg)
	}
	app.Service = ledger.NewService(app.Store, app.Publisher, ledger.Config{
		StartingBalance: cfg.StartingBalance,
		Metrics:         m,
		Logger:          logger,
	})

	if cfg.StorageBackend == config.BackendMemory {
		if err := app.seed(ctx, logger); err != nil {
			app.Close()
			return nil, err
		}
	}
	return app, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogFile)
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		a.Store = memory.New()
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("unable to load SDK config: %w", err)
		}
		a.Store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.AccountsTable, cfg.TransactionsTable, cfg.RewardsTable, cfg.UserRewardsTable)
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("unable to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		store := pgstore.New(pool)
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		a.Store = store
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
	return nil
}

func (a *App) openPublisher(ctx context.Context, cfg *config.Config) error {
	if cfg.SQSQueueURL == "" {
		a.Publisher = events.NoOpPublisher{}
		return nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}
	a.Publisher = events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	return nil
}

// seed loads the catalog rewards and the demo account into a fresh memory store.
func (a *App) seed(ctx context.Context, logger *slog.Logger) error {
	result, err := a.Catalog.ImportRewards(ctx, a.Store)
	if err != nil {
		return fmt.Errorf("failed to seed rewards: %w", err)
	}
	if _, err := a.Service.EnsureAccount(ctx, DemoUserID, DemoUsername); err != nil {
		return fmt.Errorf("failed to seed demo account: %w", err)
	}
	logger.InfoContext(ctx, "seeded memory store", "rewards", len(result.Created), "user_id", DemoUserID)
	return nil
}
