package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: icons\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "icons", cfg.App.Name)
	assert.Equal(t, 10000, cfg.Catalogue.Timeout)
	assert.Equal(t, 2000, cfg.Dispatch.LiveTimeout)
	assert.Equal(t, "icon:", cfg.Cache.Prefix)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "lucide", cfg.Generator.PackageName)
	assert.Equal(t, "icons_gen.go", cfg.Generator.FileName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Database.Snapshot.Enabled())
}

func TestLoadFromFile_Values(t *testing.T) {
	path := writeConfig(t, `
catalogue:
  index_url: http://upstream.local/index.json
  icon_base_url: http://upstream.local/icons
  timeout: 1500
dispatch:
  live_lookup: true
  live_timeout: 250
cache:
  enabled: true
  ttl: 60
database:
  redis:
    address: localhost:6379
  snapshot:
    driver: sqlite
    dsn: file:icons.db
generator:
  package_name: icons
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://upstream.local/index.json", cfg.Catalogue.IndexURL)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(cfg.Catalogue.Timeout))
	assert.True(t, cfg.Dispatch.LiveLookup)
	assert.Equal(t, 250, cfg.Dispatch.LiveTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)
	assert.True(t, cfg.Database.Snapshot.Enabled())
	assert.Equal(t, "icons", cfg.Generator.PackageName)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("ICONS_UPSTREAM", "http://mirror.local")
	path := writeConfig(t, "catalogue:\n  icon_base_url: ${ICONS_UPSTREAM}/icons\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://mirror.local/icons", cfg.Catalogue.IconBaseURL)
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	path := writeConfig(t, "server:\n  address: \":8081\"\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Address)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown log level",
			body:    "logging:\n  level: verbose\n",
			wantErr: "logging.level",
		},
		{
			name:    "cache without redis",
			body:    "cache:\n  enabled: true\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "unknown snapshot driver",
			body:    "database:\n  snapshot:\n    driver: mysql\n    dsn: x\n",
			wantErr: "database.snapshot.driver",
		},
		{
			name:    "snapshot without dsn",
			body:    "database:\n  snapshot:\n    driver: postgres\n",
			wantErr: "database.snapshot.dsn",
		},
		{
			name:    "bad package name",
			body:    "generator:\n  package_name: my-icons\n",
			wantErr: "generator.package_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
