package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cliplugins "zetalan/internal/cli_plugins"
	"zetalan/internal/config"
	"zetalan/internal/util/logger/handlers/slogpretty"
	"zetalan/internal/util/logger/sl"
	"zetalan/pkg/cli"

	"github.com/spf13/cobra"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// Создаем контекст с отменой для graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cliplugins.App{}

	c := cli.NewCLI(ctx, "zetalan", "Mental arithmetic game with LAN host discovery")
	configPath := c.PersistentFlags().StringP("config", "c", "", "Path to YAML config (default: $CONFIG_PATH)")
	env := c.PersistentFlags().StringP("env", "e", "", "Override environment: local, dev, prod")

	c.OnInitialize(func(cmd *cobra.Command) error {
		// Загружаем конфигурацию
		app.Cfg = config.MustLoad(*configPath)
		if *env != "" {
			app.Cfg.Env = *env
		}

		// Настраиваем логгер
		app.Log = setupLogger(app.Cfg.Env)
		app.Log.Debug("starting application",
			slog.String("command", cmd.Name()),
			slog.String("name", app.Cfg.Name),
			slog.String("group", app.Cfg.Discovery.Group),
			slog.Int("port", app.Cfg.Discovery.Port),
		)
		return nil
	})

	c.RegisterPlugin(cliplugins.NewHostCommand(app))
	c.RegisterPlugin(cliplugins.NewSearchCommand(app))
	c.RegisterPlugin(cliplugins.NewPlayCommand(app))
	c.RegisterPlugin(cliplugins.NewScoresCommand(app))

	if err := c.Run(os.Args[1:]); err != nil {
		log := app.Log
		if log == nil {
			log = setupLogger(envLocal)
		}
		log.Error("command failed", sl.Err(err))
		cancel()
		os.Exit(1)
	}
}

// Логи пишутся в stderr, чтобы не мешать выводу команд и строке игры
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = setupPrettySlog()
	}
	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stderr)

	return slog.New(handler)
}
