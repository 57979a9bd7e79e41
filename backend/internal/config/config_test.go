package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carrierview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9090"
  max_upload_bytes: 1024
logging:
  level: debug
preload:
  path: /data/carriers.xlsx
  debounce: 2s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/data/carriers.xlsx", cfg.Preload.Path)
	assert.Equal(t, 2*time.Second, cfg.Preload.Debounce)
	// untouched keys keep their defaults
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10, cfg.Server.UploadBurst)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARRIERVIEW_ADDR", ":7000")
	t.Setenv("CARRIERVIEW_LOG_LEVEL", " WARN ")
	t.Setenv("CARRIERVIEW_PRELOAD", "/tmp/c.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/c.csv", cfg.Preload.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad level":       "logging:\n  level: loud\n",
		"zero upload cap": "server:\n  max_upload_bytes: 0\n",
		"relative metric": "metrics:\n  path: metrics\n",
		"not yaml":        "server: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracing.Enabled = true
	cfg.Preload.Path = "carriers.csv"

	path := filepath.Join(t.TempDir(), "nested", "c.yaml")
	require.NoError(t, cfg.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
