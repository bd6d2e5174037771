package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dummysite/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/dummysite-controller"
	configFileName = "config.yaml"
)

// GetDefaultConfigPath returns the per-user configuration directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}

	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath on top of the defaults.
// A missing file is not an error; the defaults are returned as-is.
func LoadConfig(configPath string) (ControllerConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return ControllerConfig{}, ConfigurationError{
			FilePath:  configFilePath,
			FileName:  configFileName,
			ErrorType: "io",
			Message:   err.Error(),
		}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return ControllerConfig{}, ConfigurationError{
			FilePath:  configFilePath,
			FileName:  configFileName,
			ErrorType: "parse",
			Message:   err.Error(),
			Suggestions: []string{
				"Check the YAML syntax of the file",
				"Durations must be written like 1s, 500ms or 2m",
			},
		}
	}

	if err := Validate(config); err != nil {
		return ControllerConfig{}, ConfigurationError{
			FilePath:  configFilePath,
			FileName:  configFileName,
			ErrorType: "validation",
			Message:   err.Error(),
		}
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
