package config

const (
	defaultDialTimeoutMs = 3000
	defaultTraceLines    = 12
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatConsole,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		History: HistoryConfig{
			SupportsBackNotifications: true,
			ExitOnRootBack:            true,
		},
		Container: ContainerConfig{
			DialTimeoutMs: defaultDialTimeoutMs,
		},
		Trace: TraceConfig{
			Enabled:  false,
			KeepRuns: 100,
		},
		Simulator: SimulatorConfig{
			ShowRecords: true,
			ShowTrace:   true,
			TraceLines:  defaultTraceLines,
		},
	}
}
