package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.StormglassAPIKey)
	assert.Equal(t, "https://api.stormglass.io/v2/weather/point", cfg.StormglassBaseURL)
	assert.Equal(t, 10*time.Second, cfg.StormglassTimeout)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, "surf_app_db", cfg.MongoDatabase)
	assert.Equal(t, "forecast_history", cfg.MongoHistoryCollection)
	assert.Equal(t, "historical_raw_data", cfg.MongoRawCollection)
	assert.Equal(t, 5*time.Second, cfg.MongoTimeout)
	assert.Equal(t, "random_forest_surf_model.json", cfg.ModelPath)
	assert.Empty(t, cfg.LocationsPath)
	assert.Equal(t, 0.5, cfg.DefaultSeaLevel)
	assert.Equal(t, int64(0), cfg.SimulatorSeed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("STORMGLASS_API_KEY", "key-123")
	t.Setenv("STORMGLASS_BASE_URL", "http://localhost:9999/v2/weather/point")
	t.Setenv("STORMGLASS_TIMEOUT", "3s")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "surf_test")
	t.Setenv("MONGODB_HISTORY_COLLECTION", "history")
	t.Setenv("MONGODB_RAW_COLLECTION", "raw")
	t.Setenv("MONGODB_TIMEOUT", "2s")
	t.Setenv("MODEL_PATH", "/models/surf.json")
	t.Setenv("LOCATIONS_PATH", "/etc/spots.json")
	t.Setenv("DEFAULT_SEA_LEVEL", "0.6")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("WORKERS", "8")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.StormglassAPIKey)
	assert.Equal(t, "http://localhost:9999/v2/weather/point", cfg.StormglassBaseURL)
	assert.Equal(t, 3*time.Second, cfg.StormglassTimeout)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "surf_test", cfg.MongoDatabase)
	assert.Equal(t, "history", cfg.MongoHistoryCollection)
	assert.Equal(t, "raw", cfg.MongoRawCollection)
	assert.Equal(t, 2*time.Second, cfg.MongoTimeout)
	assert.Equal(t, "/models/surf.json", cfg.ModelPath)
	assert.Equal(t, "/etc/spots.json", cfg.LocationsPath)
	assert.Equal(t, 0.6, cfg.DefaultSeaLevel)
	assert.Equal(t, int64(42), cfg.SimulatorSeed)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidStormglassTimeout(t *testing.T) {
	t.Setenv("STORMGLASS_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORMGLASS_TIMEOUT")
}

func TestLoad_NegativeMongoTimeout(t *testing.T) {
	t.Setenv("MONGODB_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_TIMEOUT")
}

func TestLoad_InvalidSeaLevel(t *testing.T) {
	t.Setenv("DEFAULT_SEA_LEVEL", "high")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_SEA_LEVEL")
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("WORKERS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_WorkersTooLarge(t *testing.T) {
	t.Setenv("WORKERS", "999")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("SIM_SEED", "abc")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIM_SEED")
}
