package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/i474232898/travel-weather-pipeline/internal/config"
	"github.com/i474232898/travel-weather-pipeline/internal/logging"
	"github.com/i474232898/travel-weather-pipeline/internal/pipeline"
	"github.com/i474232898/travel-weather-pipeline/internal/weather"
	"github.com/i474232898/travel-weather-pipeline/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// One run id correlates the log lines of all four stages.
	logger := logging.New(cfg.AppEnv, cfg.LogLevel).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting pipeline",
		"env", cfg.AppEnv,
		"source", cfg.ForecastSource,
		"cities", len(cfg.Cities),
		"data_dir", cfg.DataDir,
		"results_dir", cfg.ResultsDir,
		"aggregated_file", cfg.AggregatedFile,
	)

	// Shared HTTP client for outbound forecast calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var client weather.ForecastClient
	switch cfg.ForecastSource {
	case config.SourceOpenMeteo:
		client = providers.NewOpenMeteoClient(httpClient, cfg.GeocoderAPIKey)
	default:
		client = providers.NewArchiveClient(httpClient, cfg.ArchiveBaseURL)
	}

	// The four stages run strictly in sequence; every unit failure is
	// logged and isolated, so the process always reaches the end.
	pipeline.Run(context.Background(), logger,
		pipeline.NewFetchStage(cfg.Cities, client, cfg.DataDir, logger),
		pipeline.NewAnalysisStage(cfg.DataDir, cfg.ResultsDir, logger),
		pipeline.NewAggregationStage(cfg.ResultsDir, cfg.AggregatedFile, logger),
		pipeline.NewSelectionStage(cfg.AggregatedFile, logger),
	)

	logger.Info("pipeline finished")
}
