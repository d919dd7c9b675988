package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
// A .env file in the working directory is loaded first when present.
type Config struct {
	StormglassAPIKey  string
	StormglassBaseURL string
	StormglassTimeout time.Duration

	MongoURI               string
	MongoDatabase          string
	MongoHistoryCollection string
	MongoRawCollection     string
	MongoTimeout           time.Duration

	ModelPath     string
	LocationsPath string

	// DefaultSeaLevel feeds tide banding when the provider reported no sea
	// level for the hour.
	DefaultSeaLevel float64

	// SimulatorSeed pins the fallback simulator's random source; 0 means
	// seed from the wall clock.
	SimulatorSeed int64

	Workers         int
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

const maxWorkers = 32

// Load reads configuration from environment variables, applying defaults
// where unset. Missing credentials are not errors here: the pipeline
// degrades per component instead.
func Load() (*Config, error) {
	// Optional; mirrors the dotenv convention of the rest of the stack.
	_ = godotenv.Load()

	stormglassTimeout, err := parseDuration("STORMGLASS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mongoTimeout, err := parseDuration("MONGODB_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	defaultSeaLevel, err := parseFloat("DEFAULT_SEA_LEVEL", "0.5")
	if err != nil {
		return nil, err
	}

	seed, err := parseInt64("SIM_SEED", "0")
	if err != nil {
		return nil, err
	}

	workers, err := parseWorkers()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StormglassAPIKey:  os.Getenv("STORMGLASS_API_KEY"),
		StormglassBaseURL: envOrDefault("STORMGLASS_BASE_URL", "https://api.stormglass.io/v2/weather/point"),
		StormglassTimeout: stormglassTimeout,

		MongoURI:               os.Getenv("MONGODB_URI"),
		MongoDatabase:          envOrDefault("MONGODB_DATABASE", "surf_app_db"),
		MongoHistoryCollection: envOrDefault("MONGODB_HISTORY_COLLECTION", "forecast_history"),
		MongoRawCollection:     envOrDefault("MONGODB_RAW_COLLECTION", "historical_raw_data"),
		MongoTimeout:           mongoTimeout,

		ModelPath:     envOrDefault("MODEL_PATH", "random_forest_surf_model.json"),
		LocationsPath: os.Getenv("LOCATIONS_PATH"),

		DefaultSeaLevel: defaultSeaLevel,
		SimulatorSeed:   seed,

		Workers:         workers,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.MongoDatabase == "" {
		return nil, errors.New("MONGODB_DATABASE must not be empty")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseFloat(key, def string) (float64, error) {
	s := envOrDefault(key, def)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}

func parseInt64(key, def string) (int64, error) {
	s := envOrDefault(key, def)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}

func parseWorkers() (int, error) {
	s := envOrDefault("WORKERS", "4")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxWorkers {
		return 0, fmt.Errorf("invalid WORKERS: %q (must be 1-%d)", s, maxWorkers)
	}
	return n, nil
}
