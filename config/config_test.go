package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/tradelib/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig, c)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "tradelib.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\nlog_level: DEBUG\ndefault_calendar: TARGET\n"), 0o600))
	t.Setenv("TRADELIB_WORKERS", "2")

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "TARGET", c.DefaultCalendar)
	assert.Equal(t, "console", c.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRADELIB_WORKERS", "0")

	_, err := config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSetConfig(t *testing.T) {
	old := config.GetConfig()
	t.Cleanup(func() { config.SetConfig(old) })

	c := config.DefaultConfig
	c.Workers = 16
	config.SetConfig(c)
	assert.Equal(t, 16, config.GetConfig().Workers)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := config.DefaultConfig
	c.LogFormat = "json"
	c.LogLevel = "warn"
	log := c.Logger(&buf)

	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
