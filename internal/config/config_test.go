package config_test

import (
	"testing"
	"time"

	"go-jobmarket/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "jobmarket")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 4, cfg.Workflow.BulkConcurrency)
	assert.Equal(t, 200, cfg.Workflow.BulkMaxItems)
	assert.Equal(t, time.Minute, cfg.Workflow.StatsCacheTTL)
	assert.Contains(t, cfg.Database.DSN(), "dbname=jobmarket")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BULK_CONCURRENCY", "8")
	t.Setenv("STATS_CACHE_TTL", "30s")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Workflow.BulkConcurrency)
	assert.Equal(t, 30*time.Second, cfg.Workflow.StatsCacheTTL)
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	t.Setenv("BULK_CONCURRENCY", "0")

	_, err := config.Load()

	assert.Error(t, err)
}
