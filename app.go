package yamljson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/yamljson/config"
	"github.com/0xalexb/yamljson/listener"
	"github.com/0xalexb/yamljson/logging"
	"github.com/0xalexb/yamljson/service"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App runs the conversion service, or any set of modules, on Fx.
type App struct {
	app *fx.App
}

// NewApp creates an App. Configuration errors surface from Start.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logCfg := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	if options.Service != nil {
		if logCfg.Level == "" {
			logCfg.Level = options.Service.Log.Level
		}

		if logCfg.Format == "" {
			logCfg.Format = options.Service.Log.Format
		}
	}

	writer := options.LogWriter
	if writer == nil {
		writer = os.Stderr
	}

	logger := logging.NewLogger(logCfg, writer)
	slog.SetDefault(logger)

	fxOpts := []fx.Option{
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logCfg),
		fx.Supply(logger),
	}

	switch {
	case options.err != nil:
		fxOpts = append(fxOpts, fx.Error(options.err))
	case options.Service != nil:
		fxOpts = append(fxOpts, serviceModules(options.Service)...)
	}

	fxOpts = append(fxOpts, fx.Options(options.Modules...))

	return fx.New(fxOpts...)
}

func serviceModules(cfg *config.ServiceConfig) []fx.Option {
	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return []fx.Option{fx.Error(fmt.Errorf("service config: %w", err))}
	}

	return []fx.Option{
		fx.Supply(cfg),
		service.Module(),
		listener.NewModule(service.ListenerName),
	}
}

// Start starts the application.
func (app *App) Start() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Start(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Run starts the application and blocks until an OS signal, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the application gracefully.
func (app *App) Stop() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
