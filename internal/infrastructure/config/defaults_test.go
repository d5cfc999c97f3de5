package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, validateConfig(cfg))

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, LogFormatConsole, cfg.Logging.Format)
	assert.True(t, cfg.History.SupportsBackNotifications)
	assert.True(t, cfg.History.ExitOnRootBack)
	assert.Zero(t, cfg.History.Stamp)
	assert.False(t, cfg.Container.Enabled)
}
