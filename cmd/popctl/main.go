// Command popctl edits a Diet Pop lineup directly against the configured
// storage backend.
package main

import (
	"context"
	"os"

	"github.com/riskibarqy/dietpop-lineup/internal/app"
	"github.com/riskibarqy/dietpop-lineup/internal/config"
	"github.com/riskibarqy/dietpop-lineup/internal/platform/logging"
)

func main() {
	logger := logging.NewConsole(os.Stderr, logging.LevelWarn)
	defer func() { _ = logger.Sync() }()

	open := func(ctx context.Context) (*app.Runtime, func(context.Context) error, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		rt, err := app.NewRuntime(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return rt, rt.Close, nil
	}

	if err := newRootCommand(open).Execute(); err != nil {
		logger.Error("popctl failed", "error", err)
		os.Exit(1)
	}
}
