package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the facetdex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Seeds    SeedsConfig    `yaml:"seeds"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig selects the filter-set persistence backend.
type StorageConfig struct {
	Driver    string `yaml:"driver"` // memory, file, redis (default: memory)
	FilePath  string `yaml:"file_path"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DatabaseConfig holds Redis connection settings (storage.driver: redis).
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds pipeline and session settings.
type SearchConfig struct {
	DebounceMs         int `yaml:"debounce_ms"`
	PipelineTimeoutSec int `yaml:"pipeline_timeout_sec"`
	ProductCap         int `yaml:"product_cap"`
	CategoryCap        int `yaml:"category_cap"`
	BrandCap           int `yaml:"brand_cap"`
	SuggestionCap      int `yaml:"suggestion_cap"`
	SessionTTLSec      int `yaml:"session_ttl_sec"`
}

// SeedsConfig points at the YAML seed files for static data.
type SeedsConfig struct {
	Catalog     string `yaml:"catalog"`
	Synonyms    string `yaml:"synonyms"`
	Suggestions string `yaml:"suggestions"`
	Facets      string `yaml:"facets"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.FilePath == "" {
		c.Storage.FilePath = "facetdex-filtersets.json"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "facetdex:"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = 200
	}
	if c.Search.PipelineTimeoutSec <= 0 {
		c.Search.PipelineTimeoutSec = 3
	}
	if c.Search.ProductCap <= 0 {
		c.Search.ProductCap = 6
	}
	if c.Search.CategoryCap <= 0 {
		c.Search.CategoryCap = 3
	}
	if c.Search.BrandCap <= 0 {
		c.Search.BrandCap = 2
	}
	if c.Search.SuggestionCap <= 0 {
		c.Search.SuggestionCap = 2
	}
	if c.Search.SessionTTLSec <= 0 {
		c.Search.SessionTTLSec = 1800
	}
	if c.Seeds.Catalog == "" {
		c.Seeds.Catalog = "config/catalog.yaml"
	}
	if c.Seeds.Synonyms == "" {
		c.Seeds.Synonyms = "config/synonyms.yaml"
	}
	if c.Seeds.Suggestions == "" {
		c.Seeds.Suggestions = "config/suggestions.yaml"
	}
	if c.Seeds.Facets == "" {
		c.Seeds.Facets = "config/facets.yaml"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case "memory", "file":
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis storage driver")
		}
	default:
		return fmt.Errorf("storage.driver must be memory, file or redis, got %q", c.Storage.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
