package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

// FetchStage downloads the raw forecast for every catalog city, one
// concurrent unit per city. Failures are isolated per city: a failed or
// empty fetch never affects sibling units, the stage just produces fewer
// files.
type FetchStage struct {
	catalog weather.Catalog
	client  weather.ForecastClient
	dataDir string
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewFetchStage(catalog weather.Catalog, client weather.ForecastClient, dataDir string, logger *slog.Logger) *FetchStage {
	return &FetchStage{
		catalog: catalog,
		client:  client,
		dataDir: dataDir,
		logger:  logger,
	}
}

func (s *FetchStage) Name() string { return "fetch" }

// Start spawns one goroutine per catalog city and returns immediately.
// Fan-out is unbounded: every city gets its own unit.
func (s *FetchStage) Start(ctx context.Context) {
	for city, locationID := range s.catalog {
		s.wg.Add(1)
		go func(city, locationID string) {
			defer s.wg.Done()
			s.fetchCity(ctx, city, locationID)
		}(city, locationID)
	}
}

// Join blocks until every spawned unit has finished.
func (s *FetchStage) Join() { s.wg.Wait() }

func (s *FetchStage) fetchCity(ctx context.Context, city, locationID string) {
	s.logger.Info("fetching forecast", "city", city, "source", s.client.Name())

	raw, err := s.client.Fetch(ctx, locationID)
	if err != nil {
		s.logger.Error("forecast fetch failed",
			"city", city, "error", fmt.Errorf("%w: %v", ErrTransport, err))
		return
	}
	if len(raw) == 0 {
		// The source has nothing for this city. Deliberately not an
		// error: no file is written and siblings are unaffected.
		return
	}

	path := filepath.Join(s.dataDir, city+"_weather.json")
	if err := writeJSONFile(path, raw); err != nil {
		s.logger.Error("saving forecast failed", "city", city, "error", err)
		return
	}

	s.logger.Info("forecast saved", "city", city, "path", path)
}
