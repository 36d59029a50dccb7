package cliplugins

import (
	"context"
	"fmt"
	"log/slog"

	"zetalan/internal/session"
	"zetalan/internal/util/logger/sl"

	"github.com/spf13/cobra"
)

type SearchCommand struct {
	cmd *cobra.Command
	app *App
}

func NewSearchCommand(app *App) *SearchCommand {
	return &SearchCommand{app: app}
}

func (s *SearchCommand) Meta() *cobra.Command {
	if s.cmd != nil {
		return s.cmd
	}
	s.cmd = &cobra.Command{
		Use:   "search",
		Short: "Search the local network for a room host",
		Long:  "Broadcasts a search request to the discovery group and prints every host that answers.",
		Args:  cobra.NoArgs,
	}
	s.cmd.Flags().StringP("name", "n", "", "Name sent with the search request")
	s.cmd.Flags().BoolP("stop-on-first", "1", false, "Stop after the first host answers")
	s.cmd.Flags().DurationP("timeout", "t", 0, "Give up after this duration (0 - wait until interrupted)")
	return s.cmd
}

func (s *SearchCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	const op = "cliplugins.SearchCommand.Execute"

	if err := s.app.ready(); err != nil {
		return err
	}
	name, err := s.app.playerName(cmd)
	if err != nil {
		return err
	}

	discovery := s.app.Cfg.Discovery
	if cmd.Flags().Changed("stop-on-first") {
		discovery.StopOnFirstHost, err = cmd.Flags().GetBool("stop-on-first")
		if err != nil {
			return err
		}
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if timeout < 0 {
		return fmt.Errorf("flag --timeout must not be negative")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log := s.app.Log.With(slog.String("op", op))

	sess, err := session.Open(ctx, discovery, name, s.app.Log)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := sess.Stop(); err != nil {
			log.Warn("Failed to stop session", sl.Err(err))
		}
	}()

	sess.SetOnHostDiscovered(func(h session.Host) {
		fmt.Fprintf(out(cmd), "Found host %s at %s\n", h.Name, h.Addr)
	})

	fmt.Fprintf(out(cmd), "Searching for hosts as %s...\n", name)

	if err := sess.SearchForHost(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reportLastHost(cmd, sess)
	return nil
}

func reportLastHost(cmd *cobra.Command, sess *session.Session) {
	host, ok := sess.LastKnownHost()
	if !ok {
		fmt.Fprintln(out(cmd), "No host found")
		return
	}
	fmt.Fprintf(out(cmd), "Last known host: %s at %s\n", host.Name, host.Addr)
}
