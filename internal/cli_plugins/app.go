package cliplugins

import (
	"fmt"
	"io"
	"log/slog"

	"zetalan/internal/codec"
	"zetalan/internal/config"
	"zetalan/internal/db"

	"github.com/spf13/cobra"
)

// App - общие зависимости команд; заполняется хуком инициализации CLI
type App struct {
	Cfg *config.Config
	Log *slog.Logger
}

func (a *App) ready() error {
	if a.Cfg == nil || a.Log == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

// playerName - значение флага --name, если он задан, иначе имя из конфигурации
func (a *App) playerName(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("name") {
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return "", err
		}
		if name == "" {
			return "", fmt.Errorf("flag --name must not be empty")
		}
		return name, codec.ValidateName(name)
	}
	return a.Cfg.Name, codec.ValidateName(a.Cfg.Name)
}

func (a *App) openResults() (db.ResultStorage, error) {
	return db.NewResultsDB(db.Config{Path: a.Cfg.Storage.Path})
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
