package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Empty(t, cfg.Scorer.RegistryPath)
	assert.False(t, cfg.Enrich.Enabled)
	assert.Equal(t, "sqlite", cfg.Catalog.Driver)
	assert.Equal(t, "audience.db", cfg.Catalog.Path)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
batch:
  concurrency: 8
scorer:
  registry_path: weights.yaml
catalog:
  driver: json
  path: existing.json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, "weights.yaml", cfg.Scorer.RegistryPath)
	assert.Equal(t, "json", cfg.Catalog.Driver)
	assert.Equal(t, "existing.json", cfg.Catalog.Path)
	// Defaults still apply for unset values
	assert.False(t, cfg.Enrich.Enabled)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
catalog:
  driver: json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("AUDIENCE_CATALOG_DRIVER", "sqlite")
	t.Setenv("AUDIENCE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "sqlite", cfg.Catalog.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("AUDIENCE_SERVER_PORT", "3000")
	t.Setenv("AUDIENCE_ENRICH_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.True(t, cfg.Enrich.Enabled)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Batch.Concurrency = 4
	cfg.Server.Port = 8080
	cfg.Catalog.Driver = "sqlite"
	cfg.Catalog.Path = "audience.db"
	return cfg
}

func TestValidateParse(t *testing.T) {
	cfg := validDefaults()
	cfg.Catalog.Path = ""

	assert.NoError(t, cfg.Validate("parse"))
}

func TestValidateMatch_MissingCatalog(t *testing.T) {
	cfg := validDefaults()
	cfg.Catalog.Driver = "postgres"
	cfg.Catalog.Path = " "

	err := cfg.Validate("match")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog.driver must be sqlite or json")
	assert.Contains(t, err.Error(), "catalog.path is required")
}

func TestValidateReconcile_JSONCatalog(t *testing.T) {
	cfg := validDefaults()
	cfg.Catalog.Driver = "json"
	cfg.Catalog.Path = "existing.json"

	assert.NoError(t, cfg.Validate("reconcile"))
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	err := cfg.Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidateConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.Concurrency = 0
	err := cfg.Validate("parse")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency must be between 1 and 64")

	cfg.Batch.Concurrency = 65
	err = cfg.Validate("parse")
	assert.Error(t, err)

	cfg.Batch.Concurrency = 64
	assert.NoError(t, cfg.Validate("parse"))
}
