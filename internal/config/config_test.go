package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasilyev/football-stats-service/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
postgres:
  host: db.internal
  user: stats
  dbname: football_stats
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.False(t, cfg.Kafka.Enabled, "kafka must default to disabled")
	assert.NotEmpty(t, cfg.Kafka.Brokers)
}

func TestLoad_ReadsValues(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  shutdownTimeout: 30
postgres:
  host: pg
  port: 6432
kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 6432, cfg.Postgres.Port)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Len(t, cfg.Kafka.Brokers, 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
