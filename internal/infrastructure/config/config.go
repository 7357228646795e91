// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "kudumbam.yaml"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds static service configuration (read-only after Load).
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Photos    PhotosConfig    `yaml:"photos,omitempty"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// BodyLimit caps request bodies in bytes. Photos arrive inline, so it is generous.
	BodyLimit  int64  `yaml:"body_limit"`
	CORSOrigin string `yaml:"cors_origin"`
}

// DatabaseConfig selects and configures the relational store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	// Path is the SQLite database file. ":memory:" is accepted.
	Path string `yaml:"path,omitempty"`
	// DSN is the Postgres connection string.
	DSN string `yaml:"dsn,omitempty"`
}

// CacheConfig sizes the in-process caches.
type CacheConfig struct {
	// Families is the number of token lookups kept in memory. Zero disables the cache.
	Families int `yaml:"families"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	// Clients bounds the number of tracked client IPs.
	Clients int `yaml:"clients"`
}

// PhotosConfig holds the S3-compatible photo bucket settings.
// Photo upload is disabled when Endpoint is empty.
type PhotosConfig struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
	// PublicURL is the base URL photos are served from. Defaults to the endpoint.
	PublicURL string `yaml:"public_url,omitempty"`
}

// Enabled reports whether a photo bucket is configured.
func (p PhotosConfig) Enabled() bool {
	return strings.TrimSpace(p.Endpoint) != ""
}

// TracingConfig toggles OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":3001",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BodyLimit:       10 << 20,
			CORSOrigin:      "*",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   "kudumbam.db",
		},
		Cache: CacheConfig{
			Families: 1024,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   40,
			Clients: 4096,
		},
		Photos: PhotosConfig{
			Region: "us-east-1",
			Bucket: "kudumbam-photos",
		},
		Tracing: TracingConfig{
			ServiceName: "kudumbam",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped when
// path is empty), an optional .env file and finally environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'kudumbam config init' first)", path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if port := env("PORT"); port != "" {
		if strings.HasPrefix(port, ":") {
			c.Server.Addr = port
		} else {
			c.Server.Addr = ":" + port
		}
	}
	if origin := env("KUDUMBAM_CORS_ORIGIN"); origin != "" {
		c.Server.CORSOrigin = origin
	}

	// DATABASE_URL implies Postgres unless a driver is chosen explicitly.
	if dsn := env("DATABASE_URL"); dsn != "" {
		c.Database.DSN = dsn
		c.Database.Driver = DriverPostgres
	}
	if driver := env("KUDUMBAM_DB_DRIVER"); driver != "" {
		c.Database.Driver = strings.ToLower(driver)
	}
	if path := env("KUDUMBAM_DB_PATH"); path != "" {
		c.Database.Path = path
	}

	if level := env("KUDUMBAM_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := env("KUDUMBAM_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	if raw := env("KUDUMBAM_TRACING"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing KUDUMBAM_TRACING: %w", err)
		}
		c.Tracing.Enabled = v
	}

	c.Photos.Endpoint = firstNonEmpty(env("PHOTO_S3_ENDPOINT"), c.Photos.Endpoint)
	c.Photos.Region = firstNonEmpty(env("PHOTO_S3_REGION"), c.Photos.Region)
	c.Photos.AccessKey = firstNonEmpty(env("PHOTO_S3_ACCESS_KEY"), c.Photos.AccessKey)
	c.Photos.SecretKey = firstNonEmpty(env("PHOTO_S3_SECRET_KEY"), c.Photos.SecretKey)
	c.Photos.Bucket = firstNonEmpty(env("PHOTO_S3_BUCKET"), c.Photos.Bucket)
	c.Photos.PublicURL = firstNonEmpty(env("PHOTO_S3_PUBLIC_URL"), c.Photos.PublicURL)
	if raw := env("PHOTO_S3_USE_SSL"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing PHOTO_S3_USE_SSL: %w", err)
		}
		c.Photos.UseSSL = v
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("database.path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn (or DATABASE_URL) is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q (valid: sqlite, postgres)", c.Database.Driver))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, errors.New("server.body_limit must be positive"))
	}
	if c.Cache.Families < 0 {
		errs = append(errs, errors.New("cache.families cannot be negative"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 || c.RateLimit.Clients <= 0) {
		errs = append(errs, errors.New("rate_limit rps, burst and clients must be positive when enabled"))
	}
	if c.Photos.Enabled() && c.Photos.Bucket == "" {
		errs = append(errs, errors.New("photos.bucket is required when photos.endpoint is set"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q (valid: text, json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
