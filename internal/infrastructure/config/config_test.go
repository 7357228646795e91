package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "KUDUMBAM_DB_DRIVER", "KUDUMBAM_DB_PATH",
	"KUDUMBAM_LOG_LEVEL", "KUDUMBAM_LOG_FORMAT", "KUDUMBAM_CORS_ORIGIN", "KUDUMBAM_TRACING",
	"PHOTO_S3_ENDPOINT", "PHOTO_S3_REGION", "PHOTO_S3_ACCESS_KEY", "PHOTO_S3_SECRET_KEY",
	"PHOTO_S3_BUCKET", "PHOTO_S3_PUBLIC_URL", "PHOTO_S3_USE_SSL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kudumbam.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, int64(10<<20), cfg.Server.BodyLimit)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.False(t, cfg.Photos.Enabled())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: ":8080"
  read_timeout: 2s
database:
  driver: postgres
  dsn: postgres://localhost/kudumbam
cache:
  families: 16
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/kudumbam", cfg.Database.DSN)
	assert.Equal(t, 16, cfg.Cache.Families)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	_, err = Load(writeFile(t, "server: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "port without colon",
			env:  map[string]string{"PORT": "9000"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9000", cfg.Server.Addr)
			},
		},
		{
			name: "port with colon",
			env:  map[string]string{"PORT": ":9001"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":9001", cfg.Server.Addr)
			},
		},
		{
			name: "database url selects postgres",
			env:  map[string]string{"DATABASE_URL": "postgres://db/k"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverPostgres, cfg.Database.Driver)
				assert.Equal(t, "postgres://db/k", cfg.Database.DSN)
			},
		},
		{
			name: "explicit driver wins over database url",
			env:  map[string]string{"DATABASE_URL": "postgres://db/k", "KUDUMBAM_DB_DRIVER": "SQLite", "KUDUMBAM_DB_PATH": "/tmp/k.db"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DriverSQLite, cfg.Database.Driver)
				assert.Equal(t, "/tmp/k.db", cfg.Database.Path)
			},
		},
		{
			name: "photos",
			env: map[string]string{
				"PHOTO_S3_ENDPOINT": "minio:9000", "PHOTO_S3_ACCESS_KEY": "ak",
				"PHOTO_S3_SECRET_KEY": "sk", "PHOTO_S3_USE_SSL": "true",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Photos.Enabled())
				assert.Equal(t, "minio:9000", cfg.Photos.Endpoint)
				assert.Equal(t, "kudumbam-photos", cfg.Photos.Bucket)
				assert.True(t, cfg.Photos.UseSSL)
			},
		},
		{
			name: "logging tracing and cors",
			env:  map[string]string{"KUDUMBAM_LOG_LEVEL": "debug", "KUDUMBAM_TRACING": "1", "KUDUMBAM_CORS_ORIGIN": "https://app.test"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.True(t, cfg.Tracing.Enabled)
				assert.Equal(t, "https://app.test", cfg.Server.CORSOrigin)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load("")
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_BadBoolEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KUDUMBAM_TRACING", "sometimes")

	_, err := Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "KUDUMBAM_TRACING")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unknown database driver"},
		{"sqlite without path", func(c *Config) { c.Database.Path = "" }, "database.path is required"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn"},
		{"zero body limit", func(c *Config) { c.Server.BodyLimit = 0 }, "body_limit"},
		{"negative cache", func(c *Config) { c.Cache.Families = -1 }, "cache.families"},
		{"rate limit without rps", func(c *Config) { c.RateLimit.RPS = 0 }, "rate_limit"},
		{"disabled rate limit ignores rps", func(c *Config) { c.RateLimit.Enabled = false; c.RateLimit.RPS = 0 }, ""},
		{"photos without bucket", func(c *Config) { c.Photos.Endpoint = "s3"; c.Photos.Bucket = "" }, "photos.bucket"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", DefaultConfigFile)

	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	err = WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestEncode_MasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "postgres://user:secret@db/k"
	cfg.Photos.SecretKey = "hunter2"

	data, err := Encode(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "secret@db")
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "driver: sqlite")
	assert.Equal(t, "hunter2", cfg.Photos.SecretKey, "original is untouched")
}
