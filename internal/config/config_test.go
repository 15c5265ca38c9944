package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Scraper.Concurrency)
	assert.Equal(t, 50, cfg.Scraper.BaseQuota)
	assert.Equal(t, 10, cfg.Scraper.MaxArticlesPerSource)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval())
	assert.NotEmpty(t, cfg.Categories)
	assert.NotEmpty(t, cfg.SourceHints)

	ratioSum := 0.0
	for _, cat := range cfg.Categories {
		ratioSum += cat.TargetRatio
	}
	assert.InDelta(t, 1.0, ratioSum, 1e-9)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
database:
  dsn: postgres://localhost/newssift
scraper:
  concurrency: 3
  baseQuota: 25
balancer:
  amplification: 2.5
`), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres://localhost/newssift", cfg.Database.DSN)
	assert.Equal(t, 3, cfg.Scraper.Concurrency)
	assert.Equal(t, 25, cfg.Scraper.BaseQuota)
	assert.InDelta(t, 2.5, cfg.Balancer.Amplification, 1e-9)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10, cfg.Scraper.MaxArticlesPerSource)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  dsn: postgres://from-file/db
`), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv(databaseDSNEnv, "postgres://from-env/db")
	t.Setenv(serviceTokenEnv, "env-token")

	cfg := Load()

	assert.Equal(t, "postgres://from-env/db", cfg.Database.DSN)
	assert.Equal(t, "env-token", cfg.Server.ServiceToken)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, "/nonexistent/config.yaml")

	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Categories)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database:   DatabaseConfig{DSN: "postgres://localhost/db"},
		Categories: []CategoryConfig{{Name: "tech", TargetRatio: 1}},
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing dsn", func(t *testing.T) {
		cfg := valid
		cfg.Database.DSN = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("no categories", func(t *testing.T) {
		cfg := valid
		cfg.Categories = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("ratio out of range", func(t *testing.T) {
		cfg := valid
		cfg.Categories = []CategoryConfig{{Name: "tech", TargetRatio: 1.5}}
		assert.Error(t, cfg.Validate())
	})
}

func TestClampScrapeInterval(t *testing.T) {
	assert.Equal(t, 5, ClampScrapeInterval(0))
	assert.Equal(t, 5, ClampScrapeInterval(-10))
	assert.Equal(t, 60, ClampScrapeInterval(60))
	assert.Equal(t, 1440, ClampScrapeInterval(5000))
}

func TestBadTimezoneRevertsToUTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduler:
  timezone: Mars/Olympus
`), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()

	assert.Equal(t, time.UTC, cfg.Scheduler.Location())
}
