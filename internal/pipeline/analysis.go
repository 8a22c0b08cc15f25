package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

// AnalysisStage computes per-day summary statistics for every fetched
// forecast file, one concurrent unit per file. The statistics are
// CPU-bound, so units are plain goroutines and the runtime schedules them
// across all cores. A bad file is logged and skipped; siblings complete.
type AnalysisStage struct {
	dataDir    string
	resultsDir string
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewAnalysisStage(dataDir, resultsDir string, logger *slog.Logger) *AnalysisStage {
	return &AnalysisStage{
		dataDir:    dataDir,
		resultsDir: resultsDir,
		logger:     logger,
	}
}

func (s *AnalysisStage) Name() string { return "analysis" }

// Start discovers the fetch stage's output files and spawns one goroutine
// per file. Fan-out equals the discovered file count.
func (s *AnalysisStage) Start(ctx context.Context) {
	files, err := filepath.Glob(filepath.Join(s.dataDir, "*_weather.json"))
	if err != nil {
		s.logger.Error("discovering forecast files failed",
			"dir", s.dataDir, "error", fmt.Errorf("%w: %v", ErrFilesystem, err))
		return
	}

	for _, file := range files {
		s.wg.Add(1)
		go func(file string) {
			defer s.wg.Done()
			s.analyzeFile(file)
		}(file)
	}
}

// Join blocks until every spawned unit has finished.
func (s *AnalysisStage) Join() { s.wg.Wait() }

func (s *AnalysisStage) analyzeFile(path string) {
	s.logger.Info("analyzing forecast", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("reading forecast failed",
			"file", path, "error", fmt.Errorf("%w: %v", ErrFilesystem, err))
		return
	}

	var forecast weather.Forecast
	if err := json.Unmarshal(data, &forecast); err != nil {
		s.logger.Error("decoding forecast failed",
			"file", path, "error", fmt.Errorf("%w: %v", ErrDecode, err))
		return
	}

	days := weather.Analyze(forecast)

	out := s.outputPath(path)
	if err := writeJSONFile(out, days); err != nil {
		s.logger.Error("saving analysis failed", "file", path, "error", err)
		return
	}

	s.logger.Info("analysis saved", "file", path, "path", out)
}

// outputPath maps data/X_weather.json to results/X_analysis.json.
func (s *AnalysisStage) outputPath(in string) string {
	base := strings.TrimSuffix(filepath.Base(in), "_weather.json")
	return filepath.Join(s.resultsDir, base+"_analysis.json")
}
