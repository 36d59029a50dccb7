package cliplugins

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"zetalan/internal/db"

	"github.com/spf13/cobra"
)

type ScoresCommand struct {
	cmd *cobra.Command
	app *App
}

func NewScoresCommand(app *App) *ScoresCommand {
	return &ScoresCommand{app: app}
}

func (s *ScoresCommand) Meta() *cobra.Command {
	if s.cmd != nil {
		return s.cmd
	}
	s.cmd = &cobra.Command{
		Use:   "scores",
		Short: "Show the best saved results",
		Long:  "Lists saved results best first. With --id shows one result, with --delete removes it.",
		Args:  cobra.NoArgs,
	}
	s.cmd.Flags().IntP("limit", "l", 10, "Maximum number of results to show (0 - all)")
	s.cmd.Flags().String("id", "", "Show a single result by ID")
	s.cmd.Flags().String("delete", "", "Delete a result by ID")
	s.cmd.MarkFlagsMutuallyExclusive("id", "delete")
	return s.cmd
}

func (s *ScoresCommand) Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	const op = "cliplugins.ScoresCommand.Execute"

	if err := s.app.ready(); err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("flag --limit must not be negative")
	}

	store, err := s.app.openResults()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer store.Close()

	if id, _ := cmd.Flags().GetString("id"); id != "" {
		return showResult(cmd, store, id)
	}
	if id, _ := cmd.Flags().GetString("delete"); id != "" {
		return deleteResult(cmd, store, id)
	}

	results, err := store.ListResults()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(results) == 0 {
		fmt.Fprintln(out(cmd), "No results yet")
		return nil
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSCORE\tSEED\tPLAYED\tID")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			i+1, r.Name, r.Score, r.Seed, r.PlayedAt.Local().Format(time.DateTime), r.ID)
	}
	return w.Flush()
}

func showResult(cmd *cobra.Command, store db.ResultStorage, id string) error {
	r, err := store.GetResult(id)
	if err != nil {
		return fmt.Errorf("result %s: %w", id, err)
	}

	w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", r.ID)
	fmt.Fprintf(w, "NAME\t%s\n", r.Name)
	fmt.Fprintf(w, "SCORE\t%d\n", r.Score)
	fmt.Fprintf(w, "SEED\t%d\n", r.Seed)
	fmt.Fprintf(w, "PLAYED\t%s\n", r.PlayedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "DURATION\t%s\n", r.Duration.Round(time.Second))
	return w.Flush()
}

// deleteResult удаляет только существующий результат, чтобы опечатка в ID не проходила молча
func deleteResult(cmd *cobra.Command, store db.ResultStorage, id string) error {
	if _, err := store.GetResult(id); err != nil {
		return fmt.Errorf("result %s: %w", id, err)
	}
	if err := store.DeleteResult(id); err != nil {
		return fmt.Errorf("delete result %s: %w", id, err)
	}
	fmt.Fprintf(out(cmd), "Deleted result %s\n", id)
	return nil
}
