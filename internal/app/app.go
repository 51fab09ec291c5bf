package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/stepconf/internal/config"
	"github.com/vk/stepconf/internal/ctxlog"
	"github.com/vk/stepconf/internal/hcl_adapter"
	"github.com/vk/stepconf/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	loader   config.Loader
}

// NewApp is the constructor for the main application. Results are written to
// outW; logs and diagnostics that accompany a result go to errW. Without
// modules, CoreModules are registered. A registry that fails validation is a
// programming error and panics.
func NewApp(outW, errW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = CoreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All entity modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		loader:   hcl_adapter.NewLoader(reg, cfg.Include),
	}
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
