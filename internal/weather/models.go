package weather

// DayData is one calendar day's summary for one city. HoursStart, HoursEnd
// and TempAvg are pointers because a day may have no hours inside the
// analyzed window; in that case they are omitted from the JSON entirely.
type DayData struct {
	Date              string   `json:"date" validate:"required"`
	HoursStart        *int     `json:"hours_start,omitempty"`
	HoursEnd          *int     `json:"hours_end,omitempty"`
	HoursCount        int      `json:"hours_count" validate:"min=0"`
	TempAvg           *float64 `json:"temp_avg,omitempty"`
	RelevantCondHours int      `json:"relevant_cond_hours" validate:"min=0"`
}

// CityData is the chronological per-day summary for one city, ordered as
// produced by the analyzer (one entry per forecast day).
type CityData []DayData

// AggregatedData maps a city name to its analyzed days. Keys are derived
// from analysis file names, not checked against the catalog.
type AggregatedData map[string]CityData
