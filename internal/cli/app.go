// Package cli wires configuration, logging and storage for the navstack commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/navstack/internal/cli/styles"
	"github.com/bnema/navstack/internal/domain/build"
	"github.com/bnema/navstack/internal/infrastructure/config"
	"github.com/bnema/navstack/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/navstack/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	BuildInfo  build.Info

	// Manager is nil when the App was built from a fixed configuration.
	Manager *config.Manager

	traceDB *sqlite.LazyDB
	traces  *sqlite.TraceStore

	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and sets up logging. The trace database
// is only opened when a command asks for it.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	app, err := NewAppWithConfig(mgr.Get(), mgr.GetConfigFile())
	if err != nil {
		return nil, err
	}
	app.Manager = mgr
	mgr.SetLogger(logging.FromContext(app.ctx))
	return app, nil
}

// NewAppWithConfig builds an App around an already loaded configuration.
func NewAppWithConfig(cfg *config.Config, configFile string) (*App, error) {
	logger, cleanup, err := logging.NewWithFile(
		logging.Config{
			Level:      logging.ParseLevel(cfg.Logging.Level),
			Format:     string(cfg.Logging.Format),
			TimeFormat: "15:04:05",
		},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			WriteToStderr: true,
			Rotator: logging.RotatorConfig{
				Dir:        cfg.Logging.LogDir,
				MaxSizeMB:  cfg.Logging.MaxSizeMB,
				MaxBackups: cfg.Logging.MaxBackups,
				MaxAgeDays: cfg.Logging.MaxAgeDays,
				Compress:   true,
			},
		},
	)
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}

	return &App{
		Config:     cfg,
		ConfigFile: configFile,
		Theme:      styles.NewTheme(),
		ctx:        logging.WithContext(context.Background(), logger),
		logCleanup: cleanup,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Traces returns the trace store at path, or at the configured path when
// path is empty. Old runs beyond trace.keep_runs are pruned on first use.
func (a *App) Traces(path string) (*sqlite.TraceStore, error) {
	if a.traces != nil {
		return a.traces, nil
	}
	if path == "" {
		path = a.Config.Trace.Path
	}

	a.traceDB = sqlite.NewLazyDB(path)
	a.traces = sqlite.NewTraceStore(a.traceDB)

	if _, err := a.traces.Prune(a.ctx, a.Config.Trace.KeepRuns); err != nil {
		return nil, fmt.Errorf("open trace store %s: %w", path, err)
	}
	return a.traces, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.traceDB != nil {
		return a.traceDB.Close()
	}
	return nil
}
