package cliplugins

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"zetalan/internal/codec"
	"zetalan/internal/config"
	"zetalan/internal/db"
	"zetalan/internal/game"
	"zetalan/internal/transport/multicast"
	"zetalan/pkg/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Name = "Tester"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "scores.db")

	return &App{
		Cfg: cfg,
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func runCLI(t *testing.T, args []string, plugins ...cli.CommandPlugin) (string, error) {
	t.Helper()

	c := cli.NewCLI(context.Background(), "zetalan", "test")
	for _, p := range plugins {
		c.RegisterPlugin(p)
	}

	var buf bytes.Buffer
	c.Root().SetOut(&buf)

	err := c.Run(args)
	return buf.String(), err
}

func saveResults(t *testing.T, app *App, results ...*db.Result) {
	t.Helper()

	store, err := app.openResults()
	require.NoError(t, err)
	defer store.Close()

	for _, r := range results {
		require.NoError(t, store.SaveResult(r))
	}
}

func TestCommands_RequireInitializedApp(t *testing.T) {
	app := &App{}

	_, err := runCLI(t, []string{"scores"}, NewScoresCommand(app))
	assert.Error(t, err)
}

func TestScoresCommand_Empty(t *testing.T) {
	app := newTestApp(t)

	out, err := runCLI(t, []string{"scores"}, NewScoresCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "No results yet")
}

func TestScoresCommand_ListsBestFirst(t *testing.T) {
	app := newTestApp(t)
	now := time.Now()

	saveResults(t, app,
		&db.Result{Name: "Alice", Score: 12, Seed: 1, PlayedAt: now},
		&db.Result{Name: "Bob", Score: 30, Seed: 2, PlayedAt: now},
		&db.Result{Name: "Carol", Score: 5, Seed: 3, PlayedAt: now},
	)

	out, err := runCLI(t, []string{"scores"}, NewScoresCommand(app))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Bob")
	assert.Contains(t, lines[2], "Alice")
	assert.Contains(t, lines[3], "Carol")
}

func TestScoresCommand_Limit(t *testing.T) {
	app := newTestApp(t)

	saveResults(t, app,
		&db.Result{Name: "Alice", Score: 12},
		&db.Result{Name: "Bob", Score: 30},
	)

	out, err := runCLI(t, []string{"scores", "--limit", "1"}, NewScoresCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Alice")

	_, err = runCLI(t, []string{"scores", "--limit", "-1"}, NewScoresCommand(app))
	assert.Error(t, err)
}

func TestPlayCommand_SavesResult(t *testing.T) {
	app := newTestApp(t)

	play := NewPlayCommand(app)
	var played *game.Game
	play.run = func(ctx context.Context, g *game.Game) error {
		played = g
		for i := 0; i < 3; i++ {
			answer := strconv.FormatUint(uint64(g.Current().Answer), 10)
			require.True(t, g.Submit(answer))
		}
		return nil
	}

	out, err := runCLI(t, []string{"play", "--seed", "42", "--name", "Dana"}, play)
	require.NoError(t, err)
	require.NotNil(t, played)

	assert.Equal(t, uint64(42), played.Seed())
	assert.Contains(t, out, "Dana scored 3 (seed 42)")

	store, err := app.openResults()
	require.NoError(t, err)
	defer store.Close()

	results, err := store.ListResults()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Dana", results[0].Name)
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, uint64(42), results[0].Seed)
}

func TestPlayCommand_UsesConfig(t *testing.T) {
	app := newTestApp(t)
	app.Cfg.Game.Seed = 7
	app.Cfg.Game.TotalTime = 30 * time.Second

	play := NewPlayCommand(app)
	var played *game.Game
	play.run = func(ctx context.Context, g *game.Game) error {
		played = g
		return nil
	}

	out, err := runCLI(t, []string{"play"}, play)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), played.Seed())
	assert.Equal(t, 30*time.Second, played.Settings().TotalTime)
	assert.Contains(t, out, "Tester scored 0 (seed 7)")
}

func TestPlayCommand_EmptyName(t *testing.T) {
	app := newTestApp(t)
	play := NewPlayCommand(app)
	play.run = func(ctx context.Context, g *game.Game) error { return nil }

	_, err := runCLI(t, []string{"play", "--name", ""}, play)
	assert.Error(t, err)
}

func TestSearchCommand_InvalidGroup(t *testing.T) {
	app := newTestApp(t)
	app.Cfg.Discovery.Group = "10.0.0.1"

	_, err := runCLI(t, []string{"search", "--timeout", "10ms"}, NewSearchCommand(app))
	assert.ErrorIs(t, err, multicast.ErrInvalidAddress)
}

func TestSearchCommand_NegativeTimeout(t *testing.T) {
	app := newTestApp(t)

	_, err := runCLI(t, []string{"search", "--timeout", "-1s"}, NewSearchCommand(app))
	assert.Error(t, err)
}

func TestHostCommand_InvalidPort(t *testing.T) {
	app := newTestApp(t)
	app.Cfg.Discovery.Port = 70000

	_, err := runCLI(t, []string{"host"}, NewHostCommand(app))
	assert.ErrorIs(t, err, multicast.ErrInvalidAddress)
}

func TestScoresCommand_ShowByID(t *testing.T) {
	app := newTestApp(t)
	r := &db.Result{Name: "Alice", Score: 12, Seed: 99, Duration: 2 * time.Minute}
	saveResults(t, app, r)

	out, err := runCLI(t, []string{"scores", "--id", r.ID}, NewScoresCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, r.ID)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "99")
	assert.Contains(t, out, "2m0s")

	_, err = runCLI(t, []string{"scores", "--id", "missing"}, NewScoresCommand(app))
	assert.ErrorIs(t, err, db.ErrResultNotFound)
}

func TestScoresCommand_Delete(t *testing.T) {
	app := newTestApp(t)
	keep := &db.Result{Name: "Alice", Score: 12}
	drop := &db.Result{Name: "Bob", Score: 30}
	saveResults(t, app, keep, drop)

	out, err := runCLI(t, []string{"scores", "--delete", drop.ID}, NewScoresCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted result "+drop.ID)

	out, err = runCLI(t, []string{"scores"}, NewScoresCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Bob")

	_, err = runCLI(t, []string{"scores", "--delete", drop.ID}, NewScoresCommand(app))
	assert.ErrorIs(t, err, db.ErrResultNotFound)
}

func TestScoresCommand_IDAndDeleteExclusive(t *testing.T) {
	app := newTestApp(t)

	_, err := runCLI(t, []string{"scores", "--id", "a", "--delete", "b"}, NewScoresCommand(app))
	assert.Error(t, err)
}

func TestHostCommand_ReservedName(t *testing.T) {
	app := newTestApp(t)

	_, err := runCLI(t, []string{"host", "--name", "Searching-Sam"}, NewHostCommand(app))
	assert.ErrorIs(t, err, codec.ErrReservedName)

	app.Cfg.Name = "RoomHost"
	_, err = runCLI(t, []string{"search", "--timeout", "10ms"}, NewSearchCommand(app))
	assert.ErrorIs(t, err, codec.ErrReservedName)
}
