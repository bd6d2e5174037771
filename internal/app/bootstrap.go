package app

import (
	"context"
	"fmt"
	"os"

	"dummysite/internal/config"
	"dummysite/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs the controller.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: initialize logging, load configuration, build services
//  2. Execution phase: run the watch loops until the context ends
//
// Example usage:
//
//	cfg := app.NewConfig(false, "", app.Overrides{})
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance.
//
//  1. Configures logging based on the debug flag
//  2. Loads config.yaml from cfg.ConfigPath (or the user config directory)
//  3. Applies command line overrides and validates the result
//  4. Connects to the cluster and builds the reconcilers
func NewApplication(cfg *Config) (*Application, error) {
	controllerCfg, err := loadConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	cfg.ControllerConfig = &controllerCfg

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// loadConfiguration sets up logging and returns the effective configuration.
func loadConfiguration(cfg *Config) (config.ControllerConfig, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, os.Stdout)

	configPath := cfg.ConfigPath
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return config.ControllerConfig{}, err
		}
		configPath = defaultPath
	}

	controllerCfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", configPath)
		return config.ControllerConfig{}, fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	cfg.Overrides.apply(&controllerCfg)
	if err := config.Validate(controllerCfg); err != nil {
		return config.ControllerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// The --debug flag wins over the configured level
	if !cfg.Debug && controllerCfg.LogLevel != "" {
		level, err := logging.ParseLevel(controllerCfg.LogLevel)
		if err != nil {
			return config.ControllerConfig{}, fmt.Errorf("invalid logLevel: %w", err)
		}
		if level != appLogLevel {
			logging.InitForCLI(level, os.Stdout)
		}
	}

	logging.Info("Bootstrap", "Loaded configuration from %s", configPath)
	return controllerCfg, nil
}

// Run executes the application until ctx is cancelled.
//
// The job template watcher, when configured, runs for the lifetime of the
// call. Returns an error if a watch cannot be opened or both watch streams
// end on their own.
func (a *Application) Run(ctx context.Context) error {
	if a.services.TemplateWatcher != nil {
		if err := a.services.TemplateWatcher.Start(); err != nil {
			return fmt.Errorf("failed to watch job template: %w", err)
		}
		defer a.services.TemplateWatcher.Stop()
	}

	logging.Info("Bootstrap", "Controller running, press Ctrl+C to stop")
	return a.services.Manager.Run(ctx)
}
