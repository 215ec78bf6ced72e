package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/config"
	"github.com/ruminaider/coach-admin/internal/logger"
	"github.com/ruminaider/coach-admin/internal/paths"
	"github.com/ruminaider/coach-admin/internal/query"
)

// runtime holds the collaborators shared by every command.
type runtime struct {
	cfg    config.Config
	log    *zap.Logger
	client *api.Client
	cache  *query.Cache
	bus    *query.Bus
	cancel context.CancelFunc
}

// loadConfig reads the config file named by --config and applies --api-url.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = paths.ConfigFile()
	}
	cfg, err := config.Load(path, paths.EnvFile())
	if err != nil {
		return config.Config{}, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
		if err := config.Validate(cfg); err != nil {
			return config.Config{}, err
		}
	}
	if cfg.Log.File == "" {
		cfg.Log.File = paths.LogFile()
	}
	return cfg, nil
}

// setup loads the configuration and builds the runtime for a command.
func setup(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return nil, err
	}
	return newRuntime(ctx, cfg, log)
}

// newRuntime wires the API client, the query cache and the invalidation bus.
func newRuntime(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...api.Option) (*runtime, error) {
	opts = append([]api.Option{api.WithLogger(log)}, opts...)
	client, err := api.New(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout, opts...)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	cache := query.NewCache(cfg.Cache.TTL)
	bus := query.NewBus(log)
	err = cache.Listen(ctx, bus, func(tag string, removed int) {
		log.Debug("cache invalidated", zap.String("tag", tag), zap.Int("removed", removed))
	})
	if err != nil {
		cancel()
		bus.Close()
		return nil, err
	}

	return &runtime{
		cfg:    cfg,
		log:    log,
		client: client,
		cache:  cache,
		bus:    bus,
		cancel: cancel,
	}, nil
}

// Close stops the bus and flushes the log.
func (r *runtime) Close() {
	r.cancel()
	if err := r.bus.Close(); err != nil {
		r.log.Warn("closing bus", zap.Error(err))
	}
	_ = r.log.Sync()
}

// interactive reports whether stdin and stdout are terminals.
func interactive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

func requireTerminal(name string) error {
	if !interactive() {
		return fmt.Errorf("%s needs an interactive terminal", name)
	}
	return nil
}
