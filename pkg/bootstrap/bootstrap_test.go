package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/chris/coin-ledger/pkg/config"
	"github.com/chris/coin-ledger/pkg/events"
	"github.com/chris/coin-ledger/pkg/models"
	"github.com/chris/coin-ledger/pkg/storage/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.FromEnv(func(key string) string { return env[key] })
	require.NoError(t, err)
	return cfg
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MemorySeedsDemoData(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, memoryConfig(t, nil), discard(), prometheus.NewRegistry())
	require.NoError(t, err)
	defer app.Close()

	assert.IsType(t, &memory.Store{}, app.Store)
	assert.Equal(t, events.NoOpPublisher{}, app.Publisher)

	account, err := app.Service.GetAccount(ctx, DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, DemoUsername, account.Username)
	assert.Equal(t, int64(25), account.Balance)

	rewards, err := app.Service.ListRewards(ctx, models.RewardFilter{})
	require.NoError(t, err)
	assert.Len(t, rewards, 4)
}

func TestNew_StartingBalance(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, memoryConfig(t, map[string]string{"STARTING_BALANCE": "100"}), discard(), nil)
	require.NoError(t, err)
	defer app.Close()

	balance, err := app.Service.GetBalance(ctx, DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestNew_CatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rewards]]
id = "reward-cape"
name = "Cape"
cost = 5
category = "avatar"
type = "cosmetic"
`), 0o600))

	ctx := context.Background()
	app, err := New(ctx, memoryConfig(t, map[string]string{"CATALOG_FILE": path}), discard(), nil)
	require.NoError(t, err)
	defer app.Close()

	rewards, err := app.Service.ListRewards(ctx, models.RewardFilter{})
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, "reward-cape", rewards[0].Id)
}

func TestNew_MissingCatalogFile(t *testing.T) {
	cfg := memoryConfig(t, map[string]string{"CATALOG_FILE": filepath.Join(t.TempDir(), "missing.toml")})
	_, err := New(context.Background(), cfg, discard(), nil)
	assert.Error(t, err)
}
