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
)

// AggregationStage merges every analysis file into one combined JSON object
// keyed by city name. It is a single unit of work: it runs on its own
// goroutine so the Start/Join interface matches the other stages, but there
// is no internal fan-out and, unlike fetch and analysis, no per-file
// isolation. The first error aborts the whole merge.
type AggregationStage struct {
	resultsDir string
	outputFile string
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewAggregationStage(resultsDir, outputFile string, logger *slog.Logger) *AggregationStage {
	return &AggregationStage{
		resultsDir: resultsDir,
		outputFile: outputFile,
		logger:     logger,
	}
}

func (s *AggregationStage) Name() string { return "aggregation" }

func (s *AggregationStage) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.aggregate()
	}()
}

func (s *AggregationStage) Join() { s.wg.Wait() }

func (s *AggregationStage) aggregate() {
	s.logger.Info("aggregating analysis results", "dir", s.resultsDir)

	files, err := filepath.Glob(filepath.Join(s.resultsDir, "*_analysis.json"))
	if err != nil {
		s.logger.Error("discovering analysis files failed",
			"dir", s.resultsDir, "error", fmt.Errorf("%w: %v", ErrFilesystem, err))
		return
	}

	aggregated := make(map[string]json.RawMessage)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			s.logger.Error("aggregation aborted: reading analysis failed",
				"file", file, "error", fmt.Errorf("%w: %v", ErrFilesystem, err))
			return
		}
		if !json.Valid(data) {
			s.logger.Error("aggregation aborted: analysis file is not valid JSON",
				"file", file, "error", ErrDecode)
			return
		}

		// Colliding keys keep the later file; Glob returns sorted
		// paths, so "later" is lexicographic.
		aggregated[cityKey(file)] = json.RawMessage(data)
	}

	if err := writeJSONFile(s.outputFile, aggregated); err != nil {
		s.logger.Error("saving aggregated data failed", "error", err)
		return
	}

	s.logger.Info("aggregated data saved", "path", s.outputFile, "cities", len(aggregated))
}

// cityKey derives the aggregation map key from a file name: the basename
// substring before the first underscore.
func cityKey(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return base
}
