package cliplugins

import (
	"context"
	"fmt"
	"log/slog"

	"zetalan/internal/session"
	"zetalan/internal/util/logger/sl"

	"github.com/spf13/cobra"
)

type HostCommand struct {
	cmd *cobra.Command
	app *App
}

func NewHostCommand(app *App) *HostCommand {
	return &HostCommand{app: app}
}

func (h *HostCommand) Meta() *cobra.Command {
	if h.cmd != nil {
		return h.cmd
	}
	h.cmd = &cobra.Command{
		Use:   "host",
		Short: "Announce this peer as a room host",
		Long:  "Joins the discovery group and answers every search request with this host's name until interrupted.",
		Args:  cobra.NoArgs,
	}
	h.cmd.Flags().StringP("name", "n", "", "Host name announced to searching peers")
	return h.cmd
}

func (h *HostCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	const op = "cliplugins.HostCommand.Execute"

	if err := h.app.ready(); err != nil {
		return err
	}
	name, err := h.app.playerName(cmd)
	if err != nil {
		return err
	}

	log := h.app.Log.With(slog.String("op", op))

	sess, err := session.Open(ctx, h.app.Cfg.Discovery, name, h.app.Log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := sess.Stop(); err != nil {
			log.Warn("Failed to stop session", sl.Err(err))
		}
	}()

	fmt.Fprintf(out(cmd), "Hosting room as %s on %s:%d, press Ctrl+C to stop\n",
		name, h.app.Cfg.Discovery.Group, h.app.Cfg.Discovery.Port)

	if err := sess.AnnounceSelfAsHost(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stats := sess.Metrics().GetStats()
	fmt.Fprintf(out(cmd), "Answered %v search requests\n", stats["searches_answered"])
	return nil
}
