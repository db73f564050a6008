package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xvierd/pomotray/internal/adapters/git"
	"github.com/xvierd/pomotray/internal/adapters/notification"
	"github.com/xvierd/pomotray/internal/adapters/sessionlog"
	"github.com/xvierd/pomotray/internal/adapters/settingsfile"
	"github.com/xvierd/pomotray/internal/adapters/storage"
	"github.com/xvierd/pomotray/internal/config"
	"github.com/xvierd/pomotray/internal/logging"
	"github.com/xvierd/pomotray/internal/ports"
	"github.com/xvierd/pomotray/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config    *config.Config
	logger    *slog.Logger
	logFile   io.Closer
	settings  *settingsfile.Store
	writer    *sessionlog.Writer
	archive   ports.EventArchive
	log       ports.SessionLogger
	stats     *services.StatsService
	git       ports.BranchDetector
	notifier  *notification.Notifier
	sounds    *notification.SoundPlayer
	alerts    *services.AlertDispatcher
	engine    *services.Engine
	configErr error
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
// Nothing here starts the clock: commands that need a live engine call
// startEngine.
func initializeServices() error {
	app = appDeps{}

	// Load configuration
	var err error
	if configPath != "" {
		app.config, err = config.LoadFrom(configPath)
	} else {
		app.config, err = config.Load()
	}
	if err != nil {
		// a broken config file must not keep the timer from starting
		app.configErr = err
		app.config = config.Resolved()
	}
	if dataDir != "" {
		dir, err := config.ExpandPath(dataDir)
		if err != nil {
			return err
		}
		app.config.Storage.DataDir = dir
	}

	if err := os.MkdirAll(app.config.Storage.DataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Diagnostic log
	app.logger, app.logFile, err = logging.OpenFile(config.GetDiagnosticLogPath(app.config), app.config.Log.Level)
	if err != nil {
		app.logger = logging.Discard()
		app.logFile = nil
	}
	if app.configErr != nil {
		app.logger.Warn("failed to load config, using defaults", "error", app.configErr)
	}

	// Settings and session log
	app.settings = settingsfile.New(config.GetSettingsPath(app.config), app.logger)
	app.writer = sessionlog.NewWriter(config.GetLogDir(app.config))
	reader := sessionlog.NewReader(config.GetLogDir(app.config), app.logger)
	app.stats = services.NewStatsService(reader)
	app.log = app.writer

	// The archive mirrors the session log; the daily files stay authoritative.
	if app.config.Archive.Enabled {
		archive, err := storage.New(config.GetDBPath(app.config))
		if err != nil {
			app.logger.Warn("failed to open archive, history reads the log files", "error", err)
		} else {
			app.archive = archive
			app.log = sessionlog.Tee{app.writer, archive}
			app.stats.SetArchive(archive)
		}
	}

	// Notifications and sounds
	app.notifier = notification.New(&app.config.Notifications)
	app.sounds = notification.NewSoundPlayer(config.GetSoundsDir(app.config), app.config.Notifications.Sound)

	// Initialize git detector
	app.git = git.NewDetector()

	return nil
}

// newEngine builds an engine over the stored settings without alerts,
// for commands that edit settings and exit.
func newEngine() *services.Engine {
	engine := services.NewEngine(app.settings.Load(), app.settings, app.log)
	engine.SetLogger(app.logger)
	app.engine = engine
	return engine
}

// startEngine builds an engine with alerts, records the opening work
// period and drives it from a ticker until ctx is cancelled.
func startEngine(ctx context.Context) (*services.Engine, error) {
	engine := newEngine()
	app.alerts = services.NewAlertDispatcher(app.notifier, app.sounds, app.config.NotificationTimeout(), app.logger)
	engine.SetAlerter(app.alerts)

	if err := engine.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start timer: %w", err)
	}
	ticker := services.NewTicker(engine, app.config.TickInterval())
	go ticker.Run(ctx)
	return engine, nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.engine != nil {
		app.engine.Close()
	}
	if app.alerts != nil {
		app.alerts.Close()
	}
	var firstErr error
	if app.writer != nil {
		if err := app.writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.archive != nil {
		if err := app.archive.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
	return firstErr
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
