package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-rppg/internal/config"
	"github.com/cwbudde/algo-rppg/internal/logging"
	"github.com/cwbudde/algo-rppg/internal/service"
	"github.com/cwbudde/algo-rppg/internal/session"
	"github.com/cwbudde/algo-rppg/internal/transport"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Consume frames from the message bus and publish vitals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Service)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file; RPPG_* variables override it")

	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	store, err := session.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	bus, err := transport.Open(cfg.Transport, cfg.Service, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Warn("close transport", zap.Error(err))
		}
	}()

	logger.Info("starting",
		zap.String("transport", cfg.Transport.Kind),
		zap.String("store", cfg.Store.Kind))

	err = service.New(cfg, bus, store, logger).Run(ctx)

	logger.Info("stopped")

	return err
}
