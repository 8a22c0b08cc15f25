package weather

import (
	"context"
	"encoding/json"
)

// ForecastClient abstracts a forecast source (archive dump, Open-Meteo, ...).
// Fetch returns the raw forecast payload for a catalog location id, verbatim.
// A nil payload with a nil error means the source has no data for that
// location; callers treat it as a normal no-op, not a failure.
type ForecastClient interface {
	Name() string
	Fetch(ctx context.Context, locationID string) (json.RawMessage, error)
}
