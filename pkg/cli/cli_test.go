package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/chris/coin-ledger/pkg/bootstrap"
	"github.com/chris/coin-ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMemoryApp returns a seeded in-memory app shared by every command in a test.
func newMemoryApp(t *testing.T) *bootstrap.App {
	t.Helper()
	cfg, err := config.FromEnv(func(string) string { return "" })
	require.NoError(t, err)
	a, err := bootstrap.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	require.NoError(t, err)
	return a
}

func run(t *testing.T, a *bootstrap.App, args ...string) (string, error) {
	t.Helper()
	openApp = func(context.Context) (*bootstrap.App, error) { return a, nil }

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAccountsCommands(t *testing.T) {
	a := newMemoryApp(t)

	out, err := run(t, a, "accounts", "create", "user-2", "--username", "Comet")
	require.NoError(t, err)
	assert.Contains(t, out, "Created account user-2 with 25 coins")

	_, err = run(t, a, "accounts", "create", "user-2")
	assert.Error(t, err)

	out, err = run(t, a, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "user-1")
	assert.Contains(t, out, "Comet")

	out, err = run(t, a, "accounts", "show", "user-2")
	require.NoError(t, err)
	assert.Contains(t, out, "balance: 25")
	assert.Contains(t, out, "Welcome bonus")

	_, err = run(t, a, "accounts", "show", "ghost")
	assert.Error(t, err)
}

func TestEarnCommand(t *testing.T) {
	a := newMemoryApp(t)

	for i := 0; i < 2; i++ {
		out, err := run(t, a, "earn", bootstrap.DemoUserID, "10", "--key", "contest-prize")
		require.NoError(t, err)
		assert.Contains(t, out, "balance 35")
	}

	balance, err := a.Service.GetBalance(context.Background(), bootstrap.DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(35), balance)

	_, err = run(t, a, "earn", bootstrap.DemoUserID, "ten")
	assert.Error(t, err)
}

func TestRewardsCommands(t *testing.T) {
	a := newMemoryApp(t)

	out, err := run(t, a, "rewards", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 rewards, skipped 4 existing")

	path := filepath.Join(t.TempDir(), "extra.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[rewards]]
id = "reward-cape"
name = "Cape"
cost = 5
category = "avatar"
type = "cosmetic"
`), 0o600))

	out, err = run(t, a, "rewards", "import", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created: reward-cape")

	out, err = run(t, a, "rewards", "list", "--category", "game", "--available")
	require.NoError(t, err)
	assert.Contains(t, out, "reward-snake-skin")
	assert.NotContains(t, out, "reward-extra-life")
	assert.NotContains(t, out, "reward-cape")
}

func TestReconcileCommand(t *testing.T) {
	a := newMemoryApp(t)

	out, err := run(t, a, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked 1 accounts")
	assert.Contains(t, out, "All balances match their history")
}
