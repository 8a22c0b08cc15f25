package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

var validate = validator.New()

// aggregatedPayload wraps the dataset so the validator dives through the
// city map and every day entry. An empty dataset is valid; it just selects
// nothing.
type aggregatedPayload struct {
	Cities weather.AggregatedData `validate:"dive,dive"`
}

// Result is the outcome of the selection stage: every city tied on both
// dimensions, plus the winning average temperature and favorable hours.
type Result struct {
	Cities    []string
	AvgTemp   float64
	CondHours int
}

// SelectionStage reads the aggregated dataset, validates its schema and
// picks the most favorable cities for travel. A single unit of work; on
// any failure it logs and selects nothing.
type SelectionStage struct {
	inputFile string
	logger    *slog.Logger
	wg        sync.WaitGroup
	result    *Result
}

func NewSelectionStage(inputFile string, logger *slog.Logger) *SelectionStage {
	return &SelectionStage{
		inputFile: inputFile,
		logger:    logger,
	}
}

func (s *SelectionStage) Name() string { return "selection" }

func (s *SelectionStage) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run()
	}()
}

func (s *SelectionStage) Join() { s.wg.Wait() }

// Result returns the selection outcome, or nil if no city qualified or the
// stage failed. Only valid after Join.
func (s *SelectionStage) Result() *Result { return s.result }

func (s *SelectionStage) run() {
	s.logger.Info("selecting most favorable cities", "file", s.inputFile)

	data, err := os.ReadFile(s.inputFile)
	if err != nil {
		s.logger.Error("reading aggregated data failed",
			"file", s.inputFile, "error", fmt.Errorf("%w: %v", ErrFilesystem, err))
		return
	}

	var dataset weather.AggregatedData
	if err := json.Unmarshal(data, &dataset); err != nil {
		s.logger.Error("decoding aggregated data failed",
			"file", s.inputFile, "error", fmt.Errorf("%w: %v", ErrDecode, err))
		return
	}

	if err := validate.Struct(aggregatedPayload{Cities: dataset}); err != nil {
		s.logger.Error("aggregated data failed validation",
			"file", s.inputFile, "error", fmt.Errorf("%w: %v", ErrValidation, err))
		return
	}

	// Map iteration order is random in Go; sort city names so repeated
	// runs over the same dataset are deterministic. The selection pass
	// itself stays strictly left to right over this order.
	names := make([]string, 0, len(dataset))
	for name := range dataset {
		names = append(names, name)
	}
	sort.Strings(names)

	candidates := make([]cityStats, 0, len(names))
	for _, name := range names {
		if stats, ok := summarize(name, dataset[name]); ok {
			candidates = append(candidates, stats)
		}
	}

	best, avgTemp, condHours := selectBest(candidates)
	if len(best) == 0 {
		s.logger.Info("no city qualified for selection", "file", s.inputFile)
		return
	}

	s.result = &Result{Cities: best, AvgTemp: avgTemp, CondHours: condHours}
	s.logger.Info("most favorable cities for travel",
		"cities", strings.Join(best, ", "),
		"avg_temp", avgTemp,
		"cond_hours", condHours)
}

// cityStats is one city's selection inputs.
type cityStats struct {
	name    string
	avgTemp float64
	hours   int
}

// summarize reduces one city's days to its selection inputs. The average
// covers only days with a defined temperature; favorable hours cover all
// days. ok is false when no day carries a temperature; such a city never
// competes, whatever its hours total.
func summarize(name string, days weather.CityData) (cityStats, bool) {
	var tempSum float64
	var tempDays, hours int

	for _, day := range days {
		if day.TempAvg != nil {
			tempSum += *day.TempAvg
			tempDays++
		}
		hours += day.RelevantCondHours
	}

	if tempDays == 0 {
		return cityStats{}, false
	}

	return cityStats{
		name:    name,
		avgTemp: tempSum / float64(tempDays),
		hours:   hours,
	}, true
}

// selectBest runs a single left-to-right pass over the candidates,
// maximizing (avgTemp, hours) lexicographically. A candidate beating the
// running best on temperature, or tying on temperature with more hours,
// replaces the whole best set; a candidate equal on both joins it. The
// pass is order-dependent: a later tie-leader with more hours drops
// earlier tie partners for good.
func selectBest(candidates []cityStats) (best []string, bestAvg float64, bestHours int) {
	bestAvg = math.Inf(-1)

	for _, c := range candidates {
		switch {
		case c.avgTemp > bestAvg || (c.avgTemp == bestAvg && c.hours > bestHours):
			best = []string{c.name}
			bestAvg = c.avgTemp
			bestHours = c.hours
		case c.avgTemp == bestAvg && c.hours == bestHours:
			best = append(best, c.name)
		}
	}

	return best, bestAvg, bestHours
}
