package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

// Forecast sources the pipeline can be pointed at.
const (
	SourceArchive   = "archive"
	SourceOpenMeteo = "openmeteo"
)

type AppConfig struct {
	// Directory layout: raw fetch output, per-city analysis output, and
	// the combined dataset path.
	DataDir        string
	ResultsDir     string
	AggregatedFile string

	// Forecast source selection and its settings.
	ForecastSource string
	ArchiveBaseURL string
	GeocoderAPIKey string
	HTTPTimeout    time.Duration

	// Cities to fetch, keyed by name with the source's location id.
	Cities weather.Catalog

	AppEnv   string
	LogLevel slog.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DataDir = getenvDefault("DATA_DIR", "./data")
	cfg.ResultsDir = getenvDefault("RESULTS_DIR", "./results")
	cfg.AggregatedFile = getenvDefault("AGGREGATED_FILE", "./aggregated_data.json")

	cfg.ForecastSource = getenvDefault("FORECAST_SOURCE", SourceArchive)
	if cfg.ForecastSource != SourceArchive && cfg.ForecastSource != SourceOpenMeteo {
		return nil, fmt.Errorf("invalid FORECAST_SOURCE: %q", cfg.ForecastSource)
	}

	cfg.ArchiveBaseURL = getenvDefault("ARCHIVE_BASE_URL", "https://code.s3.yandex.net/async-module")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cities, err := loadCities()
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

// loadCities parses the CITIES env var ("NAME=id,NAME=id"); when unset the
// built-in catalog is used.
func loadCities() (weather.Catalog, error) {
	raw := os.Getenv("CITIES")
	if raw == "" {
		return weather.DefaultCatalog(), nil
	}

	catalog := make(weather.Catalog)
	for _, pair := range strings.Split(raw, ",") {
		name, id, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("invalid CITIES entry: %q", pair)
		}
		catalog[name] = id
	}

	return catalog, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
