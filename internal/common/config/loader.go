// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (if present), merges config.<env>.yaml and
// applies environment overrides such as CATALOGUE_INDEX_URL.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)
	return v
}

// bindEnvKeys makes AutomaticEnv see keys that have no value in any file,
// so CATALOGUE_INDEX_URL works without a config.yaml.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"catalogue.index_url", "catalogue.icon_base_url", "catalogue.timeout", "catalogue.user_agent",
		"dispatch.live_lookup", "dispatch.live_timeout",
		"cache.enabled", "cache.ttl", "cache.prefix",
		"database.redis.address", "database.redis.password", "database.redis.db",
		"database.snapshot.driver", "database.snapshot.dsn",
		"server.address",
		"generator.output_dir", "generator.package_name", "generator.file_name", "generator.registry_path",
		"logging.level", "logging.format", "logging.output",
	} {
		_ = v.BindEnv(key)
	}
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up towards the module root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "icon-registry"
	}

	if cfg.Catalogue.IndexURL == "" {
		cfg.Catalogue.IndexURL = "https://unpkg.com/lucide-static@latest/icon-nodes.json"
	}
	if cfg.Catalogue.IconBaseURL == "" {
		cfg.Catalogue.IconBaseURL = "https://unpkg.com/lucide-static@latest/icons"
	}
	if cfg.Catalogue.Timeout == 0 {
		cfg.Catalogue.Timeout = 10000
	}
	if cfg.Catalogue.UserAgent == "" {
		cfg.Catalogue.UserAgent = cfg.App.Name
		if cfg.App.Version != "" {
			cfg.Catalogue.UserAgent += "/" + cfg.App.Version
		}
	}

	if cfg.Dispatch.LiveTimeout == 0 {
		cfg.Dispatch.LiveTimeout = 2000
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}
	if cfg.Cache.Prefix == "" {
		cfg.Cache.Prefix = "icon:"
	}

	if cfg.Database.Snapshot.MaxConnections == 0 {
		cfg.Database.Snapshot.MaxConnections = 5
	}
	if cfg.Database.Snapshot.MaxIdle == 0 {
		cfg.Database.Snapshot.MaxIdle = 2
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Generator.OutputDir == "" {
		cfg.Generator.OutputDir = "./pkg/lucide"
	}
	if cfg.Generator.PackageName == "" {
		cfg.Generator.PackageName = "lucide"
	}
	if cfg.Generator.FileName == "" {
		cfg.Generator.FileName = "icons_gen.go"
	}
	if cfg.Generator.RegistryPath == "" {
		cfg.Generator.RegistryPath = "configs/icon-registry.json"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", cfg.Logging.Level)
	}

	if cfg.Catalogue.Timeout < 0 || cfg.Dispatch.LiveTimeout < 0 {
		return fmt.Errorf("catalogue.timeout and dispatch.live_timeout must not be negative")
	}

	if cfg.Cache.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when cache.enabled is true")
	}

	switch cfg.Database.Snapshot.Driver {
	case "":
	case "sqlite", "postgres":
		if cfg.Database.Snapshot.DSN == "" {
			return fmt.Errorf("database.snapshot.dsn is required for driver %q", cfg.Database.Snapshot.Driver)
		}
	default:
		return fmt.Errorf("database.snapshot.driver must be sqlite or postgres (got %q)", cfg.Database.Snapshot.Driver)
	}

	if cfg.Generator.PackageName == "" || strings.ContainsAny(cfg.Generator.PackageName, "-. /") {
		return fmt.Errorf("generator.package_name %q is not a valid Go package name", cfg.Generator.PackageName)
	}

	return nil
}
