// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/audio/synth"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/audio/wavfile"
	"github.com/tejashwikalptaru/spacewave/internal/adapter/eventbus"
	fyneui "github.com/tejashwikalptaru/spacewave/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/spacewave/internal/logger"
	"github.com/tejashwikalptaru/spacewave/internal/ports"
	"github.com/tejashwikalptaru/spacewave/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	config Config

	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	source   ports.SampleSource

	// Services
	visualizer *service.VisualizerService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{config: config}

	// Step 1: Create logger
	loggerCfg := logger.DefaultConfig()
	loggerCfg.Level = logger.ParseLevel(config.LogLevel, loggerCfg.Level)
	if config.LogFormat != "" {
		loggerCfg.Format = config.LogFormat
	}
	app.logger = logger.NewLogger(loggerCfg)
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 3: Create a sample source
	source, err := app.openSource()
	if err != nil {
		_ = syncBus.Close()
		return nil, err
	}
	app.source = source

	// Step 4: Create services
	app.visualizer = service.NewVisualizerService(
		app.logger.With(slog.String("service", "visualizer")),
		app.source,
		app.eventBus,
		config.Visual,
		config.TickInterval,
	)

	// Step 5: Create Fyne application and UI
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, config.AppName, app.visualizer)

	// Step 6: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.visualizer,
		app.eventBus,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)

	// The ticker only runs while the app is in the foreground on mobile.
	// Desktop windows keep animating when they lose focus.
	if fyne.CurrentDevice().IsMobile() {
		lifecycle := app.fyneApp.Lifecycle()
		lifecycle.SetOnEnteredForeground(func() { app.presenter.OnVisibilityChanged(true) })
		lifecycle.SetOnExitedForeground(func() { app.presenter.OnVisibilityChanged(false) })
	}

	// Stop ticking before the window goes away
	app.mainWindow.SetOnBeforeClose(func() {
		app.visualizer.Stop()
	})

	return app, nil
}

// openSource creates the WAV source when an input is configured and the
// synthesizer otherwise.
func (a *Application) openSource() (ports.SampleSource, error) {
	if a.config.Input != "" {
		source, err := wavfile.Open(a.config.Input, a.config.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		source.SetLogger(a.logger.With(slog.String("source", "wav")))
		a.logger.Info("reading samples from file",
			slog.String("path", a.config.Input),
			slog.Int("sample_rate", source.SampleRate()),
			slog.Int("channels", source.Channels()))
		return source, nil
	}

	source, err := synth.NewSource(a.config.synthConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}
	source.SetLogger(a.logger.With(slog.String("source", "synth")))
	a.logger.Info("using synthesized samples", slog.String("signal", a.config.Synth.Signal))
	return source, nil
}

// Start starts the visualizer without showing the window.
func (a *Application) Start() error {
	if err := a.visualizer.Start(); err != nil {
		return fmt.Errorf("failed to start visualizer: %w", err)
	}
	return nil
}

// Run starts the visualizer when configured to and shows the window.
// It blocks until the window is closed.
func (a *Application) Run() error {
	if a.config.AutoStart {
		if err := a.Start(); err != nil {
			return err
		}
	}

	a.logger.Info("SpaceWave started")
	a.mainWindow.ShowAndRun()
	return nil
}

// Shutdown gracefully shuts down the application. It is idempotent.
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		// Shutdown UI and presenter
		if a.presenter != nil {
			a.presenter.Shutdown()
		}

		// Shutdown services; this also closes the sample source
		if a.visualizer != nil {
			if serr := a.visualizer.Shutdown(); serr != nil {
				a.logger.Warn("failed to shutdown visualizer service", slog.Any("error", serr))
				err = serr
			}
		}

		if a.eventBus != nil {
			if cerr := a.eventBus.Close(); cerr != nil {
				a.logger.Warn("failed to close event bus", slog.Any("error", cerr))
			}
		}

		a.logger.Info("application shutdown complete")
	})
	return err
}

// GetVisualizer returns the visualizer service.
func (a *Application) GetVisualizer() *service.VisualizerService {
	return a.visualizer
}

// GetEventBus returns the event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetMainWindow returns the main window.
func (a *Application) GetMainWindow() *fyneui.MainWindow {
	return a.mainWindow
}

// GetSource returns the sample source.
func (a *Application) GetSource() ports.SampleSource {
	return a.source
}
