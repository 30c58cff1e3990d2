package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Recent-log store drivers.
const (
	DriverRedis  = "redis"
	DriverValkey = "valkey"
	DriverMemory = "memory"
)

// DriverSQLite is the only supported record store driver.
const DriverSQLite = "sqlite"

// Config holds the fedsearch service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Records RecordsConfig `yaml:"records"`
	Recent  RecentConfig  `yaml:"recent"`
	Search  SearchConfig  `yaml:"search"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// RecordsConfig holds the record store settings.
type RecordsConfig struct {
	Driver           string `yaml:"driver"` // sqlite
	Path             string `yaml:"path"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// RecentConfig holds the recent-query store settings.
type RecentConfig struct {
	Driver    string   `yaml:"driver"` // redis, valkey, memory (default: memory)
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
	KeyPrefix string   `yaml:"key_prefix"`
	Capacity  int      `yaml:"capacity"`
}

// SearchConfig holds fan-out settings.
type SearchConfig struct {
	AdapterTimeoutMs int `yaml:"adapter_timeout_ms"`
	CandidateLimit   int `yaml:"candidate_limit"`
}

// AdapterTimeout returns the per-adapter deadline.
func (s SearchConfig) AdapterTimeout() time.Duration {
	return time.Duration(s.AdapterTimeoutMs) * time.Millisecond
}

// Load reads configuration for an environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates a YAML config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. ${VAR} and ${VAR:-default} are expanded first.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
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
	if c.Records.Driver == "" {
		c.Records.Driver = DriverSQLite
	}
	if c.Records.MaxOpenConns <= 0 {
		c.Records.MaxOpenConns = 4
	}
	if c.Records.ReadinessTimeout <= 0 {
		c.Records.ReadinessTimeout = 10
	}
	if c.Recent.Driver == "" {
		c.Recent.Driver = DriverMemory
	}
	if c.Recent.KeyPrefix == "" {
		c.Recent.KeyPrefix = "fedsearch:"
	}
	if c.Recent.Capacity <= 0 {
		c.Recent.Capacity = 5
	}
	if c.Search.AdapterTimeoutMs <= 0 {
		c.Search.AdapterTimeoutMs = 5000
	}
	if c.Search.CandidateLimit <= 0 {
		c.Search.CandidateLimit = 10
	}
}

// Validate checks the configuration for correctness and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.Records.Driver != DriverSQLite {
		errs = append(errs, fmt.Errorf("records.driver must be %q, got %q", DriverSQLite, c.Records.Driver))
	}
	if c.Records.Path == "" {
		errs = append(errs, errors.New("records.path is required"))
	}
	switch c.Recent.Driver {
	case DriverRedis, DriverValkey:
		if len(c.Recent.Addrs) == 0 {
			errs = append(errs, fmt.Errorf("recent.addrs is required for driver %q", c.Recent.Driver))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf(
			"recent.driver must be one of redis, valkey, memory, got %q", c.Recent.Driver,
		))
	}
	if c.Recent.DB < 0 {
		errs = append(errs, fmt.Errorf("recent.db must be >= 0, got %d", c.Recent.DB))
	}
	return errors.Join(errs...)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// relative to the source file: internal/config -> project root
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b)))
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, def, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = def
		}
		return []byte(val)
	})
}
