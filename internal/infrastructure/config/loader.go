package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/navstack/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
	log       *zerolog.Logger
}

// NewManager creates a new configuration manager reading config.toml from
// the XDG config directory, then the working directory.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// NAVSTACK_HISTORY_EXIT_ON_ROOT_BACK and friends.
	v.SetEnvPrefix("NAVSTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "NAVSTACK_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind NAVSTACK_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "NAVSTACK_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind NAVSTACK_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
		log:       logging.FromContext(context.Background()),
	}, nil
}

// SetLogger sets the logger used by the file watcher. The manager logs
// nothing until one is set, since logging is configured from the result of
// Load.
func (m *Manager) SetLogger(log *zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = log
}

// SetConfigFile forces an explicit config file instead of the search paths.
func (m *Manager) SetConfigFile(path string) {
	m.viper.SetConfigFile(path)
}

// Load loads the configuration from file and environment variables. A
// missing config file is created with defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.apply()
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// apply unmarshals, normalizes and validates the viper state into m.config.
// Must be called with m.mu held for write.
func (m *Manager) apply() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for invalid values or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensurePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func ensurePaths(config *Config) error {
	if config.Trace.Path == "" {
		path, err := GetTraceFile()
		if err != nil {
			return fmt.Errorf("failed to get trace path: %w", err)
		}
		config.Trace.Path = path
	}
	if config.Logging.LogDir == "" {
		dir, err := GetStateDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = filepath.Join(dir, "logs")
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	default:
		config.Logging.Format = LogFormatConsole
	}

	config.Container.URL = strings.TrimSpace(config.Container.URL)
	if config.Container.DialTimeoutMs <= 0 {
		config.Container.DialTimeoutMs = defaultDialTimeoutMs
	}
	if config.Simulator.TraceLines <= 0 {
		config.Simulator.TraceLines = defaultTraceLines
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}
	if err := GenerateSchemaFile(filepath.Dir(configFile)); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created default configuration file: %s\n", configFile)
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)

	m.viper.SetDefault("history.supports_back_notifications", defaults.History.SupportsBackNotifications)
	m.viper.SetDefault("history.exit_on_root_back", defaults.History.ExitOnRootBack)
	m.viper.SetDefault("history.stamp", defaults.History.Stamp)

	m.viper.SetDefault("container.enabled", defaults.Container.Enabled)
	m.viper.SetDefault("container.url", defaults.Container.URL)
	m.viper.SetDefault("container.dial_timeout_ms", defaults.Container.DialTimeoutMs)

	m.viper.SetDefault("trace.enabled", defaults.Trace.Enabled)
	m.viper.SetDefault("trace.path", defaults.Trace.Path)
	m.viper.SetDefault("trace.keep_runs", defaults.Trace.KeepRuns)

	m.viper.SetDefault("simulator.show_records", defaults.Simulator.ShowRecords)
	m.viper.SetDefault("simulator.show_trace", defaults.Simulator.ShowTrace)
	m.viper.SetDefault("simulator.trace_lines", defaults.Simulator.TraceLines)
}
