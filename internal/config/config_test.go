package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[storage]
backend = "postgres"

[sync]
backend = "redis"
context_id = "driver-tab"

[catalog]
day_start = "08:00"
day_end = "20:00"
slot_minutes = 30

[engine]
min_duration_hours = 2
max_duration_hours = 3
seed = 42

[[listings]]
id = "garage-1"
name = "Garage"
price_per_hour = 3.5
capacity_total = 5
is_active = true

[[drivers]]
id = "d-1"
name = "Anna"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, BackendRedis, cfg.Sync.Backend)
	assert.Equal(t, "driver-tab", cfg.Sync.ContextID)
	assert.Equal(t, 30, cfg.Catalog.SlotMinutes)
	assert.Equal(t, int64(42), cfg.Engine.Seed)

	listings := cfg.DomainListings()
	require.Len(t, listings, 1)
	assert.Equal(t, 5, listings[0].CapacityTotal)
	assert.True(t, listings[0].IsActive)
	assert.Equal(t, "Anna", cfg.DomainDrivers()[0].Name)

	// Значения по умолчанию
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, cfg.Redis.Addr, cfg.Queue.RedisAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PARKING_SERVER_HTTP_PORT", "7070")
	t.Setenv("PARKING_STORAGE_BACKEND", "redis")
	t.Setenv("PARKING_ENGINE_HOST_NAME", "Olga")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "Olga", cfg.Engine.HostName)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "06:00", cfg.Catalog.DayStart)
	assert.Equal(t, 60, cfg.Catalog.SlotMinutes)
	assert.NotEmpty(t, cfg.Sync.ContextID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "storage backend", body: "[storage]\nbackend = \"mongo\"\n"},
		{name: "sync backend", body: "[sync]\nbackend = \"postgres\"\n"},
		{name: "day start", body: "[catalog]\nday_start = \"6am\"\n"},
		{name: "durations", body: "[engine]\nmin_duration_hours = 4\nmax_duration_hours = 2\n"},
		{name: "duplicate listing", body: "[[listings]]\nid = \"a\"\n[[listings]]\nid = \"a\"\n"},
		{name: "broken toml", body: "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "parking", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=parking sslmode=disable", c.DSN())
}
