package config

// Config represents the complete configuration for navstack.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`
	// History describes the capabilities of the platform history the
	// coordinator drives.
	History HistoryConfig `mapstructure:"history" yaml:"history" toml:"history"`
	// Container configures the embedding container's back button bridge.
	Container ContainerConfig `mapstructure:"container" yaml:"container" toml:"container"`
	// Trace controls persistence of host traces produced by replay and sim.
	Trace     TraceConfig     `mapstructure:"trace" yaml:"trace" toml:"trace"`
	Simulator SimulatorConfig `mapstructure:"simulator" yaml:"simulator" toml:"simulator"`
}

// LogFormat selects the zerolog writer.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig holds logging preferences.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	Format LogFormat `mapstructure:"format" yaml:"format" toml:"format" jsonschema:"enum=console,enum=json"`
	// EnableFileLog also writes logs to rotated files under LogDir.
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days"`
}

// HistoryConfig controls how the coordinator talks to the history host.
type HistoryConfig struct {
	// SupportsBackNotifications is false on platforms that cannot report
	// back presses. Closing then only pops the topmost record.
	SupportsBackNotifications bool `mapstructure:"supports_back_notifications" yaml:"supports_back_notifications" toml:"supports_back_notifications"`
	// ExitOnRootBack makes a back from the root leave the application.
	ExitOnRootBack bool `mapstructure:"exit_on_root_back" yaml:"exit_on_root_back" toml:"exit_on_root_back"`
	// Stamp fixes the session stamp. Zero picks a random one per session.
	Stamp int64 `mapstructure:"stamp" yaml:"stamp" toml:"stamp"`
}

// ContainerConfig points at an embedding container shell.
type ContainerConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	URL     string `mapstructure:"url" yaml:"url" toml:"url"`
	// DialTimeoutMs bounds the initial WebSocket handshake.
	DialTimeoutMs int `mapstructure:"dial_timeout_ms" yaml:"dial_timeout_ms" toml:"dial_timeout_ms"`
}

// TraceConfig controls the sqlite trace store.
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	// Path is the sqlite file. Empty means the XDG data directory.
	Path string `mapstructure:"path" yaml:"path" toml:"path"`
	// KeepRuns prunes older runs on startup. Zero keeps everything.
	KeepRuns int `mapstructure:"keep_runs" yaml:"keep_runs" toml:"keep_runs"`
}

// SimulatorConfig tunes the interactive simulator.
type SimulatorConfig struct {
	ShowRecords bool `mapstructure:"show_records" yaml:"show_records" toml:"show_records"`
	ShowTrace   bool `mapstructure:"show_trace" yaml:"show_trace" toml:"show_trace"`
	// TraceLines is how many host trace lines the simulator keeps on screen.
	TraceLines int `mapstructure:"trace_lines" yaml:"trace_lines" toml:"trace_lines"`
}
