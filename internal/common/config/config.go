// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// CatalogueConfig describes the upstream icon supplier.
type CatalogueConfig struct {
	IndexURL    string `mapstructure:"index_url"`     // JSON object name -> {svg|paths}
	IconBaseURL string `mapstructure:"icon_base_url"` // <base>/<name>.svg
	Timeout     int    `mapstructure:"timeout"`       // milliseconds
	UserAgent   string `mapstructure:"user_agent"`
}

// DispatchConfig controls the runtime miss path.
type DispatchConfig struct {
	LiveLookup  bool `mapstructure:"live_lookup"`
	LiveTimeout int  `mapstructure:"live_timeout"` // milliseconds
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	TTL     int    `mapstructure:"ttl"` // seconds
	Prefix  string `mapstructure:"prefix"`
}

type DatabaseConfig struct {
	Redis    RedisConfig    `mapstructure:"redis"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SnapshotConfig selects the SQL store used to keep an offline copy of the
// catalogue. Driver is "sqlite" or "postgres"; empty disables snapshots.
type SnapshotConfig struct {
	Driver         string `mapstructure:"driver"`
	DSN            string `mapstructure:"dsn"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// Enabled reports whether a snapshot driver is configured.
func (s SnapshotConfig) Enabled() bool {
	return s.Driver != ""
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// GeneratorConfig holds the output locations of icongen.
type GeneratorConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	PackageName  string `mapstructure:"package_name"`
	FileName     string `mapstructure:"file_name"`
	RegistryPath string `mapstructure:"registry_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// String is used in startup logs; it never prints credentials.
func (r RedisConfig) String() string {
	return fmt.Sprintf("redis://%s/%d", r.Address, r.DB)
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
