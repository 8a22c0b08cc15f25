package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

// TestAnalysisStage verifies a forecast file is analyzed into the results
// directory and a malformed sibling is isolated.
func TestAnalysisStage(t *testing.T) {
	dataDir := t.TempDir()
	resultsDir := filepath.Join(t.TempDir(), "results")

	forecast := `{
	"forecasts": [
		{
			"date": "2024-06-01",
			"hours": [
				{"hour": 9, "temp": 18, "condition": "clear"},
				{"hour": 10, "temp": 20, "condition": "rain"}
			]
		}
	]
}`
	writeFile(t, filepath.Join(dataDir, "BERLIN_weather.json"), forecast)
	writeFile(t, filepath.Join(dataDir, "MADRID_weather.json"), `{broken`)

	stage := NewAnalysisStage(dataDir, resultsDir, discardLogger())
	stage.Start(context.Background())
	stage.Join()

	// The malformed file never prevents the good one from completing.
	if _, err := os.Stat(filepath.Join(resultsDir, "MADRID_analysis.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no MADRID output, stat err: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(resultsDir, "BERLIN_analysis.json"))
	if err != nil {
		t.Fatalf("reading analysis output: %v", err)
	}

	var days weather.CityData
	if err := json.Unmarshal(data, &days); err != nil {
		t.Fatalf("decoding analysis output: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}

	day := days[0]
	if day.HoursCount != 2 {
		t.Fatalf("expected 2 window hours, got %d", day.HoursCount)
	}
	if day.TempAvg == nil || *day.TempAvg != 19.0 {
		t.Fatalf("unexpected temp_avg: %v", day.TempAvg)
	}
	if day.RelevantCondHours != 1 {
		t.Fatalf("expected 1 favorable hour, got %d", day.RelevantCondHours)
	}
}

// TestAnalysisStageEmptyDataDir verifies the stage joins cleanly with
// nothing to do.
func TestAnalysisStageEmptyDataDir(t *testing.T) {
	stage := NewAnalysisStage(t.TempDir(), t.TempDir(), discardLogger())
	stage.Start(context.Background())
	stage.Join()
}

// TestAnalysisOutputPath checks the data → results path mapping.
func TestAnalysisOutputPath(t *testing.T) {
	stage := NewAnalysisStage("data", "results", discardLogger())

	got := stage.outputPath(filepath.Join("data", "BERLIN_weather.json"))
	want := filepath.Join("results", "BERLIN_analysis.json")
	if got != want {
		t.Fatalf("outputPath = %q, want %q", got, want)
	}
}
