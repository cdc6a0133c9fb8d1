// Package config loads resolution engine configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "5m" parse.
type Duration time.Duration

// UnmarshalYAML accepts either a Go duration string or a plain number of
// seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CacheConfig bounds the result cache.
type CacheConfig struct {
	Capacity int      `yaml:"capacity"`
	TTL      Duration `yaml:"ttl"`
}

// TimeoutConfig bounds the two I/O phases of a resolution.
type TimeoutConfig struct {
	Provider Duration `yaml:"provider"`
	Catalog  Duration `yaml:"catalog"`
}

// LoggingConfig mirrors logging.Config for the YAML file.
type LoggingConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// IGDBConfig carries credentials for the catalog enrichment provider.
type IGDBConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Config holds application configuration.
type Config struct {
	DBPath   string            `yaml:"db_path"`
	Datasets map[string]string `yaml:"datasets"` // platform id -> JSON dataset path
	Cache    CacheConfig       `yaml:"cache"`
	Timeouts TimeoutConfig     `yaml:"timeouts"`
	Logging  LoggingConfig     `yaml:"logging"`
	IGDB     IGDBConfig        `yaml:"igdb"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		DBPath:   "titlematch.db",
		Datasets: map[string]string{},
		Cache: CacheConfig{
			Capacity: 256,
			TTL:      Duration(15 * time.Minute),
		},
		Timeouts: TimeoutConfig{
			Provider: Duration(10 * time.Second),
			Catalog:  Duration(10 * time.Second),
		},
		Logging: LoggingConfig{Format: "text", Level: "info"},
	}
}

// configPaths returns the list of paths to search for a config file.
func configPaths() []string {
	paths := []string{
		".titlematch.yaml",
		".titlematch.yml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "titlematch", "config.yaml"),
			filepath.Join(home, ".config", "titlematch", "config.yml"),
			filepath.Join(home, ".titlematch.yaml"),
		)
	}

	return paths
}

// Load loads configuration from file or returns defaults.
// Priority: env TITLEMATCH_CONFIG > search paths > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if envPath := os.Getenv("TITLEMATCH_CONFIG"); envPath != "" {
		if err := cfg.loadFromFile(envPath); err != nil {
			return nil, err
		}
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := cfg.loadFromFile(path); err != nil {
				return nil, err
			}
			break
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvOverrides() {
	if dbPath := os.Getenv("TITLEMATCH_DB"); dbPath != "" {
		c.DBPath = dbPath
	}
	if id := os.Getenv("IGDB_CLIENT_ID"); id != "" {
		c.IGDB.ClientID = id
	}
	if secret := os.Getenv("IGDB_CLIENT_SECRET"); secret != "" {
		c.IGDB.ClientSecret = secret
	}
}

// GetDBPath returns the catalog database path, applying defaults.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return "titlematch.db"
}

// GetCacheCapacity returns the result cache capacity, applying defaults.
func (c *Config) GetCacheCapacity() int {
	if c.Cache.Capacity > 0 {
		return c.Cache.Capacity
	}
	return 256
}

// GetCacheTTL returns the result cache TTL, applying defaults.
func (c *Config) GetCacheTTL() time.Duration {
	if c.Cache.TTL > 0 {
		return c.Cache.TTL.Std()
	}
	return 15 * time.Minute
}

// GetProviderTimeout returns the provider fetch timeout.
func (c *Config) GetProviderTimeout() time.Duration {
	return c.Timeouts.Provider.Std()
}

// GetCatalogTimeout returns the catalog query timeout.
func (c *Config) GetCatalogTimeout() time.Duration {
	return c.Timeouts.Catalog.Std()
}
