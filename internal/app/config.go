package app

import (
	"dummysite/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Custom configuration directory (optional)
	// When empty, ~/.config/dummysite-controller is used
	ConfigPath string

	// Command line overrides; nil means "not given on the command line"
	Overrides Overrides

	// Controller configuration, filled in during bootstrap
	ControllerConfig *config.ControllerConfig
}

// Overrides are command line values that take precedence over config.yaml.
type Overrides struct {
	Namespace       *string
	JobTemplatePath *string
	ScratchDir      *string
	Reconnect       *bool
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string, overrides Overrides) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
		Overrides:  overrides,
	}
}

// apply copies every set override onto cfg.
func (o Overrides) apply(cfg *config.ControllerConfig) {
	if o.Namespace != nil {
		cfg.Controller.Namespace = *o.Namespace
	}
	if o.JobTemplatePath != nil {
		cfg.Controller.JobTemplatePath = *o.JobTemplatePath
	}
	if o.ScratchDir != nil {
		cfg.Controller.ScratchDir = *o.ScratchDir
	}
	if o.Reconnect != nil {
		cfg.Watch.Reconnect = *o.Reconnect
	}
}
