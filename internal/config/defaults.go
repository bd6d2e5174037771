package config

import "time"

const (
	// DefaultScratchDir is where fetched pages are stored, one directory per host.
	DefaultScratchDir = "/usr/src/app/files"

	// DefaultImage is the container image of the fetch Job.
	DefaultImage = "jakousa/dwk-app1:b7fc18de2376da80ff0cfc72cf581a9f94d10e64"

	DefaultInitialBackoff = time.Second
	DefaultMaxBackoff     = time.Minute
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() ControllerConfig {
	return ControllerConfig{
		Controller: ReconcileConfig{
			ScratchDir:   DefaultScratchDir,
			DefaultImage: DefaultImage,
			BackoffLimit: 0,
			RecordEvents: true,
		},
		Watch: WatchConfig{
			Reconnect:      false,
			InitialBackoff: DefaultInitialBackoff,
			MaxBackoff:     DefaultMaxBackoff,
		},
		LogLevel: "info",
	}
}
