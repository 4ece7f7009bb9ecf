package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and every recognised variable away from the host.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"SI_API", "JWT_TOKEN", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"SITUATION_CONFIG", "SITUATION_API_URL", "SITUATION_API_TOKEN",
		"SITUATION_TRACE_ENDPOINT", "SITUATION_LOG_LEVEL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingURLIsConfigError(t *testing.T) {
	isolate(t)
	t.Setenv("JWT_TOKEN", "tok")

	_, err := Load(nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.ErrorIs(t, err, ErrMissing)

	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "api.url", ce.Key)
}

func TestLoad_MissingTokenIsConfigError(t *testing.T) {
	isolate(t)
	t.Setenv("SI_API", "http://localhost:8080")

	_, err := Load(nil)
	var ce *Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "api.token", ce.Key)
}

func TestLoad_LegacyEnvAndDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("SI_API", "http://localhost:8080/")
	t.Setenv("JWT_TOKEN", " tok ")

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.API.URL)
	assert.Equal(t, "tok", c.API.Token)
	assert.Equal(t, 30*time.Second, c.API.Timeout)
	assert.Equal(t, 10, c.UI.LogHeight)
	assert.Equal(t, 2000, c.UI.LogMaxLines)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "situation", c.Trace.ServiceName)
	assert.Empty(t, c.Trace.Endpoint)
}

func TestLoad_PrecedenceFileEnvFlags(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
url = "http://from-file"
token = "file-token"
timeout = "5s"

[ui]
log_height = 6
`), 0o644))
	t.Setenv("SITUATION_CONFIG", path)
	t.Setenv("SITUATION_API_TOKEN", "env-token")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.String("token", "", "")
	require.NoError(t, flags.Parse([]string{"--api-url", "http://from-flag"}))

	c, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag", c.API.URL)
	assert.Equal(t, "env-token", c.API.Token)
	assert.Equal(t, 5*time.Second, c.API.Timeout)
	assert.Equal(t, 6, c.UI.LogHeight)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	isolate(t)
	t.Setenv("SITUATION_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	t.Setenv("SI_API", "http://x")
	t.Setenv("JWT_TOKEN", "t")

	_, err := Load(nil)
	assert.True(t, IsConfigError(err))
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "situation.log")
	logger, closeFn, err := NewLogger(LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	logger.Debug("hello", "key", "value")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "key=value")

	_, _, err = NewLogger(LogConfig{Level: "loud"})
	assert.True(t, IsConfigError(err))

	discard, closeFn, err := NewLogger(LogConfig{Level: "info"})
	require.NoError(t, err)
	discard.Info("dropped")
	assert.NoError(t, closeFn())
}
