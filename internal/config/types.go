package config

import "time"

// ControllerConfig is the top-level configuration structure for the controller.
type ControllerConfig struct {
	Controller ReconcileConfig `yaml:"controller"`
	Watch      WatchConfig     `yaml:"watch"`
	LogLevel   string          `yaml:"logLevel,omitempty"`
}

// ReconcileConfig holds the settings used while reconciling DummySites and Jobs.
type ReconcileConfig struct {
	Namespace       string `yaml:"namespace,omitempty"`       // Namespace to watch (empty: all namespaces)
	ScratchDir      string `yaml:"scratchDir,omitempty"`      // Base directory for fetched pages
	JobTemplatePath string `yaml:"jobTemplatePath,omitempty"` // Job manifest template (empty: built-in template)
	DefaultImage    string `yaml:"defaultImage,omitempty"`    // Image used when a DummySite does not name one
	BackoffLimit    int32  `yaml:"backoffLimit"`              // backoffLimit of the fetch Job
	RecordEvents    bool   `yaml:"recordEvents"`              // Record Kubernetes Events on DummySites
}

// WatchConfig controls how watch connections are handled.
type WatchConfig struct {
	// Reconnect re-opens a watch stream after it ends. Disabled by default:
	// a dropped stream is logged and left closed.
	Reconnect      bool          `yaml:"reconnect"`
	InitialBackoff time.Duration `yaml:"initialBackoff,omitempty"`
	MaxBackoff     time.Duration `yaml:"maxBackoff,omitempty"`
}
