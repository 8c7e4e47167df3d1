// config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	old := AppConfig
	t.Cleanup(func() { AppConfig = old })

	// No config file in the test working directory: defaults apply.
	require.NoError(t, LoadConfig(""))
	assert.Equal(t, "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master", AppConfig.Source.BaseURL)
	assert.Equal(t, "file", AppConfig.Cache.Backend)
	assert.Equal(t, 30*time.Second, AppConfig.Source.Timeout)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	old := AppConfig
	t.Cleanup(func() { AppConfig = old })

	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoadConfigFromFile(t *testing.T) {
	old := AppConfig
	t.Cleanup(func() { AppConfig = old })

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  base_url: "http://example.invalid"
  report_path: "/daily/"
  timeout: "5s"
cache:
  backend: "file"
  dir: "/tmp/covid-cache"
database:
  user: "reporter"
`), 0644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "http://example.invalid", AppConfig.Source.BaseURL)
	assert.Equal(t, "/daily/", AppConfig.Source.ReportPath)
	assert.Equal(t, 5*time.Second, AppConfig.Source.Timeout)
	assert.Equal(t, "/tmp/covid-cache", AppConfig.Cache.Dir)
	assert.Equal(t, "reporter", AppConfig.Database.User)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "3306", AppConfig.Database.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	old := AppConfig
	t.Cleanup(func() { AppConfig = old })

	t.Setenv("DB_USER", "override-user")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("CACHE_DIR", "/var/cache/covid")

	require.NoError(t, LoadConfig(""))
	assert.Equal(t, "override-user", AppConfig.Database.User)
	assert.Equal(t, "hunter2", AppConfig.Database.Password)
	assert.Equal(t, "/var/cache/covid", AppConfig.Cache.Dir)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	old := AppConfig
	t.Cleanup(func() { AppConfig = old })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: \"redis\"\n"), 0644))
	assert.Error(t, LoadConfig(path))
}
