package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Config reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CEREBRO_ADDR", "CEREBRO_ROUTER", "CEREBRO_SECRET_KEY", "PAYMENT_PUBLISHABLE_KEY",
		"CEREBRO_LOG_LEVEL", "CEREBRO_LOG_FORMAT", "CEREBRO_METRICS", "CEREBRO_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "cerebro.toml", `
addr = ":9000"
router = "chi"
publishable_key = "pk_from_file"
log_format = "console"
shutdown_timeout = "3s"
metrics = false
`)
	t.Setenv("PAYMENT_PUBLISHABLE_KEY", "pk_from_env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, RouterChi, cfg.Router)
	assert.Equal(t, "pk_from_env", cfg.PublishableKey, "env must win over file")
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep defaults")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("CEREBRO_SECRET_KEY")
	t.Cleanup(func() { os.Unsetenv("CEREBRO_SECRET_KEY") })
	env := writeFile(t, ".env", "CEREBRO_SECRET_KEY=from-dotenv\n")

	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.SecretKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `addr = `},
		{"unknown router", `router = "gin"`},
		{"unknown log format", `log_format = "xml"`},
		{"empty addr", `addr = ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeFile(t, "c.toml", tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverridesRouter(t *testing.T) {
	clearEnv(t)
	t.Setenv("CEREBRO_ROUTER", "chi")
	t.Setenv("CEREBRO_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, RouterChi, cfg.Router)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
}
