package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/idealens/internal/adapters/driving/cli"
	"github.com/custodia-labs/idealens/internal/app"
	"github.com/custodia-labs/idealens/internal/logger"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Debug("Shutdown signal received, stopping...")
		cancel()
	}()

	cli.SetVersion(version)
	cli.SetBuilder(func(opts cli.Options) (*cli.Services, error) {
		c, err := app.New(app.Options{ConfigDir: opts.ConfigDir, Ephemeral: opts.Ephemeral})
		if err != nil {
			return nil, err
		}
		return &cli.Services{
			Settings: c.Settings(),
			Search:   c.SearchController,
			Chat:     c.ChatSession,
			Close:    c.Close,
		}, nil
	})

	if err := cli.Execute(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
