package cliplugins

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zetalan/internal/db"
	"zetalan/internal/game"
	"zetalan/internal/ui"
	"zetalan/internal/util/logger/sl"

	"github.com/spf13/cobra"
)

type PlayCommand struct {
	cmd *cobra.Command
	app *App
	run func(ctx context.Context, g *game.Game) error
}

func NewPlayCommand(app *App) *PlayCommand {
	return &PlayCommand{
		app: app,
		run: ui.RunTerminal,
	}
}

func (p *PlayCommand) Meta() *cobra.Command {
	if p.cmd != nil {
		return p.cmd
	}
	p.cmd = &cobra.Command{
		Use:   "play",
		Short: "Play a round of mental arithmetic",
		Long:  "Solve as many problems as possible before the clock runs out. Peers using the same seed get the same problems.",
		Args:  cobra.NoArgs,
	}
	p.cmd.Flags().StringP("name", "n", "", "Player name stored with the result")
	p.cmd.Flags().Uint64P("seed", "s", 0, "Problem sequence seed (0 - random)")
	return p.cmd
}

func (p *PlayCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	const op = "cliplugins.PlayCommand.Execute"

	if err := p.app.ready(); err != nil {
		return err
	}
	name, err := p.app.playerName(cmd)
	if err != nil {
		return err
	}

	seed := p.app.Cfg.Game.Seed
	if cmd.Flags().Changed("seed") {
		seed, err = cmd.Flags().GetUint64("seed")
		if err != nil {
			return err
		}
	}

	settings := game.DefaultSettings()
	if p.app.Cfg.Game.TotalTime > 0 {
		settings.TotalTime = p.app.Cfg.Game.TotalTime
	}

	var g *game.Game
	if seed == 0 {
		g = game.NewRandom(settings)
	} else {
		g = game.New(seed, settings)
	}

	log := p.app.Log.With(
		slog.String("op", op),
		slog.String("name", name),
		slog.Uint64("seed", g.Seed()),
	)
	log.Debug("Game started")

	startedAt := time.Now()
	if err := p.run(ctx, g); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result := &db.Result{
		Name:     name,
		Seed:     g.Seed(),
		Score:    g.Score(),
		PlayedAt: startedAt.UTC(),
		Duration: time.Since(startedAt),
	}

	store, err := p.app.openResults()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close results db", sl.Err(err))
		}
	}()

	if err := store.SaveResult(result); err != nil {
		return fmt.Errorf("%s: save result: %w", op, err)
	}

	log.Info("Game finished", slog.Int("score", result.Score), slog.String("result", result.ID))
	fmt.Fprintf(out(cmd), "%s scored %d (seed %d), result %s\n", name, result.Score, result.Seed, result.ID)
	return nil
}
