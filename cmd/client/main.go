package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/rconjoe/flickpicker/internal/model"
)

func main() {
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flickpicker",
	})
	logger := slog.New(handler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:  "flickpicker",
		Usage: "Browse, vote on and queue movies for movie night",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to an env file (defaults to .env)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				handler.SetLevel(log.DebugLevel)
			}
			runner.envPath = cmd.String("env")
			return ctx, nil
		},
		Commands: runner.register(),
	}

	err := app.Run(ctx, os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close local stores", slog.String("error", cerr.Error()))
	}
	stop()

	if err != nil {
		if errors.Is(err, model.ErrNotAuthenticated) {
			logger.Warn("login required, run `flickpicker login`")
			os.Exit(1)
		}
		logger.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
