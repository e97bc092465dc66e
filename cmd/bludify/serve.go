package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	applog "bludify/internal/log"
	"bludify/internal/repos"
	"bludify/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web storefront",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	applog.Info(nil, "config.loaded", cfg.Fields())

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	app, err := server.New(cfg, db)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		applog.Info(nil, "server.listen", map[string]any{"port": cfg.Port})
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		applog.Info(nil, "server.shutdown", nil)
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
