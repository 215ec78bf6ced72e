package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruminaider/coach-admin/internal/fixtures"
	"github.com/ruminaider/coach-admin/internal/logger"
)

var (
	fixturesAddr    string
	fixturesLatency time.Duration
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Development API with seeded data",
}

var fixturesServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fixture API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level})
		if err != nil {
			return err
		}
		defer log.Sync()

		app := fixtures.NewApp(fixtures.NewStore(), fixtures.Options{
			Latency: fixturesLatency,
			Logger:  log,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			if err := app.Shutdown(); err != nil {
				log.Warn("shutting down fixtures", zap.Error(err))
			}
		}()

		fmt.Printf("Serving fixtures on %s (latency %s)\n", fixturesAddr, fixturesLatency)
		log.Info("fixtures listening", zap.String("addr", fixturesAddr), zap.Duration("latency", fixturesLatency))
		if err := app.Listen(fixturesAddr); err != nil && ctx.Err() == nil {
			return fmt.Errorf("serving fixtures: %w", err)
		}
		return nil
	},
}

func init() {
	fixturesServeCmd.Flags().StringVar(&fixturesAddr, "addr", ":4000", "Listen address")
	fixturesServeCmd.Flags().DurationVar(&fixturesLatency, "latency", 0, "Artificial delay added to every response")
	fixturesCmd.AddCommand(fixturesServeCmd)
}
