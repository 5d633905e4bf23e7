// Package app wires configuration, logging, metrics and the optional cache
// for the command-line tools.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/amante/menutools/internal/config"
	"github.com/amante/menutools/internal/db"
	dbRedis "github.com/amante/menutools/internal/db/redis"
	logpkg "github.com/amante/menutools/internal/logger"
	"github.com/amante/menutools/internal/metrics"
	"github.com/amante/menutools/internal/version"
)

// App is the per-run environment shared by the tools.
type App struct {
	Name     string
	Env      string
	Config   config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Run

	store db.Store
}

// Start loads config/<env>.yaml (from configDir when set) and builds the logger
// and a fresh metrics registry.
func Start(name, configDir string) (*App, error) {
	env := config.GetEnv()

	var (
		cfg config.Config
		err error
	)
	if configDir != "" {
		cfg, err = config.LoadFrom(filepath.Join(configDir, env+".yaml"))
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	a := &App{
		Name:     name,
		Env:      env,
		Config:   cfg,
		Logger:   logger.Named(name),
		Registry: reg,
		Metrics:  metrics.New(reg),
	}

	a.Logger.Info("Starting",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.String("project_root", cfg.ProjectRoot),
	)
	return a, nil
}

// Context attaches the run logger to ctx for code below the use cases.
func (a *App) Context(ctx context.Context) context.Context {
	return logpkg.ContextWithLogger(ctx, a.Logger)
}

// Path resolves a config path against the project root.
func (a *App) Path(p string) string {
	return a.Config.Resolve(p)
}

// OpenCache connects to Valkey/Redis when the cache is enabled and waits
// until it answers. It returns nil when the cache is disabled.
func (a *App) OpenCache(ctx context.Context) (db.Store, error) {
	c := a.Config.Cache
	if !c.Enabled {
		return nil, nil
	}

	// valkey and redis speak the same protocol; rueidis serves both.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    c.Addrs,
		Password: c.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", c.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(c.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", c.Driver, err)
	}

	a.store = store
	a.Logger.Info("Connected to cache",
		zap.String("driver", c.Driver),
		zap.Strings("addrs", c.Addrs),
	)
	return store, nil
}

// Finish records the outcome, exports metrics and releases resources.
// It returns err, annotated when the metrics export fails as well.
func (a *App) Finish(err error) error {
	if err == nil {
		a.Metrics.MarkSuccess(a.Name, time.Now())
	}
	if path := a.Config.Metrics.Textfile; path != "" {
		if werr := metrics.WriteTextfile(a.Path(path), a.Registry); werr != nil {
			a.Logger.Warn("Failed to write metrics textfile", zap.Error(werr))
			if err == nil {
				err = werr
			}
		}
	}

	if a.store != nil {
		a.store.Close()
	}
	if err != nil {
		a.Logger.Error("Run failed", zap.Error(err))
	} else {
		a.Logger.Info("Run completed")
	}
	_ = a.Logger.Sync()
	return err
}
