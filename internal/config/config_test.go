package config

import (
	"testing"
	"time"
)

// TestLoadDefaults verifies the defaults when no environment is set.
func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DATA_DIR", "RESULTS_DIR", "AGGREGATED_FILE", "FORECAST_SOURCE",
		"ARCHIVE_BASE_URL", "HTTP_TIMEOUT", "CITIES", "APP_ENV", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "./data" || cfg.ResultsDir != "./results" {
		t.Fatalf("unexpected directories: %s, %s", cfg.DataDir, cfg.ResultsDir)
	}
	if cfg.AggregatedFile != "./aggregated_data.json" {
		t.Fatalf("unexpected aggregated file: %s", cfg.AggregatedFile)
	}
	if cfg.ForecastSource != SourceArchive {
		t.Fatalf("unexpected source: %s", cfg.ForecastSource)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if len(cfg.Cities) == 0 {
		t.Fatal("expected the default catalog to be non-empty")
	}
	if cfg.Cities["MOSCOW"] != "moscow" {
		t.Fatalf("unexpected default catalog entry: %q", cfg.Cities["MOSCOW"])
	}
}

// TestLoadCitiesOverride verifies CITIES parsing.
func TestLoadCitiesOverride(t *testing.T) {
	t.Setenv("CITIES", "MOSCOW=moscow, PARIS=paris")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Cities) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(cfg.Cities))
	}
	if cfg.Cities["PARIS"] != "paris" {
		t.Fatalf("unexpected PARIS id: %q", cfg.Cities["PARIS"])
	}
}

// TestLoadInvalidCities verifies malformed CITIES entries are rejected.
func TestLoadInvalidCities(t *testing.T) {
	t.Setenv("CITIES", "MOSCOW")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a CITIES entry without an id")
	}
}

// TestLoadInvalidSource verifies unknown forecast sources are rejected.
func TestLoadInvalidSource(t *testing.T) {
	t.Setenv("FORECAST_SOURCE", "crystal-ball")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown forecast source")
	}
}

// TestLoadInvalidTimeout verifies HTTP_TIMEOUT must parse as a duration.
func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an invalid timeout")
	}
}
