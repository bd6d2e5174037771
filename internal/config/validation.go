package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks a loaded configuration for values the controller cannot run with.
func Validate(cfg ControllerConfig) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Controller.ScratchDir) == "" {
		errs.Add("controller.scratchDir", "is required", cfg.Controller.ScratchDir)
	}
	if strings.TrimSpace(cfg.Controller.DefaultImage) == "" {
		errs.Add("controller.defaultImage", "is required", cfg.Controller.DefaultImage)
	}
	if cfg.Controller.BackoffLimit < 0 {
		errs.Add("controller.backoffLimit", "must not be negative", cfg.Controller.BackoffLimit)
	}
	if cfg.Watch.InitialBackoff < 0 {
		errs.Add("watch.initialBackoff", "must not be negative", cfg.Watch.InitialBackoff)
	}
	if cfg.Watch.MaxBackoff > 0 && cfg.Watch.MaxBackoff < cfg.Watch.InitialBackoff {
		errs.Add("watch.maxBackoff", "must not be smaller than watch.initialBackoff", cfg.Watch.MaxBackoff)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
