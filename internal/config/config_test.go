package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/gateway-probe/internal/catalog"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway_probe.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

// chdirTemp runs the test from an empty directory so no stray .env or
// default config file is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", cfg.BaseURL)
	assert.Equal(t, "http://localhost:3000", cfg.StatusURL)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 60*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, time.Second, cfg.Delay)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.True(t, cfg.Save)
	assert.Len(t, cfg.Catalog().IDs(), 25)
}

func TestLoadFile(t *testing.T) {
	chdirTemp(t)
	path := writeTempConfig(t, `
base_url: http://gw:9000
probe_timeout: 15s
delay: 250ms
csv: true
models:
  - id: gemini-2.5-pro
    provider: google
  - id: custom-model
    provider: acme
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://gw:9000", cfg.BaseURL)
	assert.Equal(t, "http://localhost:3000", cfg.StatusURL, "status url stays independent")
	assert.Equal(t, 15*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Delay)
	assert.True(t, cfg.CSV)
	assert.Equal(t, []string{"gemini-2.5-pro", "custom-model"}, cfg.Catalog().IDs())
}

func TestLoadSearchesDefaultFiles(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway-probe.yaml"), []byte("prompt: from default file\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from default file", cfg.Prompt)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=from-dotenv\n"), 0o644))
	t.Setenv("GATEWAY_PROBE_URL", "http://env-gw:1")
	t.Setenv("GATEWAY_STATUS_URL", "http://env-status:2")
	// Setenv restores the original value; the unset lets .env provide it.
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://env-gw:1", cfg.BaseURL)
	assert.Equal(t, "http://env-status:2", cfg.StatusURL)
	assert.Equal(t, "from-dotenv", cfg.Gemini.APIKey)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	chdirTemp(t)
	path := writeTempConfig(t, "base_url: [unterminated\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = ""
	cfg.ProbeTimeout = 0
	cfg.Models = []catalog.Entry{{ID: " ", Provider: "google"}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url is required")
	assert.Contains(t, err.Error(), "probe_timeout must be positive")
	assert.Contains(t, err.Error(), "models[0].id is required")
}

func TestValidateConnectTimeoutBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConnectTimeout = MaxConnectTimeout
	assert.NoError(t, cfg.Validate())

	cfg.ConnectTimeout = 2 * time.Second
	assert.NoError(t, cfg.Validate())

	cfg.ConnectTimeout = MaxConnectTimeout + time.Millisecond
	assert.ErrorContains(t, cfg.Validate(), "connect_timeout must not exceed 5s")

	path := writeTempConfig(t, "connect_timeout: 30s\n")
	chdirTemp(t)
	_, err := Load(path)
	assert.ErrorContains(t, err, "connect_timeout must not exceed 5s")
}
