package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/cli"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/config"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/services"
	"github.com/dmitrijs2005/taskkeeper/internal/storage"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store := storage.NewFileStore(cfg.DataFilePath, cfg.LockTimeout)
	repo, err := store.Load()
	if err != nil {
		// A corrupt store file is never recreated automatically; the user
		// decides what to do with it.
		if errors.Is(err, common.ErrMalformedStoreFile) {
			logger.Error(ctx, "store file is malformed, refusing to start", "path", cfg.DataFilePath, "error", err)
		} else {
			logger.Error(ctx, "loading store failed", "path", cfg.DataFilePath, "error", err)
		}
		os.Exit(1)
	}

	svc := services.NewSessionService(repo, store, logger)
	app := cli.NewApp(svc, logger)
	app.Run(ctx)
}
