package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "disabled": true, "off": true,
}

// validateConfig collects every problem so the user can fix them in one go.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateContainer(config)...)
	validationErrors = append(validationErrors, validateTrace(config)...)
	validationErrors = append(validationErrors, validateHistory(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if !validLevels[config.Logging.Level] {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", config.Logging.Level))
	}
	if config.Logging.EnableFileLog {
		if config.Logging.MaxSizeMB < 1 {
			validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
		}
		if config.Logging.MaxBackups < 0 {
			validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
		}
		if config.Logging.MaxAgeDays < 0 {
			validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
		}
	}
	return validationErrors
}

func validateContainer(config *Config) []string {
	if !config.Container.Enabled {
		return nil
	}
	if config.Container.URL == "" {
		return []string{"container.url is required when container.enabled is true"}
	}
	u, err := url.Parse(config.Container.URL)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return []string{fmt.Sprintf("container.url must be a ws:// or wss:// URL (got %q)", config.Container.URL)}
	}
	return nil
}

func validateTrace(config *Config) []string {
	if config.Trace.KeepRuns < 0 {
		return []string{"trace.keep_runs must be non-negative"}
	}
	return nil
}

func validateHistory(config *Config) []string {
	if config.History.Stamp < 0 {
		return []string{"history.stamp must be non-negative"}
	}
	return nil
}
