package weather

import (
	"github.com/i474232898/travel-weather-pipeline/internal/common"
)

// Daytime window considered for travel statistics, hours inclusive.
const (
	dayHoursStart = 9
	dayHoursEnd   = 19
)

// precipitationMarkers flag conditions that disqualify an hour from the
// favorable count. Conditions are dash-separated tokens ("light-rain",
// "wet-snow"), so substring matching covers the compound forms too.
var precipitationMarkers = []string{
	"rain", "drizzle", "showers", "snow", "hail", "thunderstorm",
}

// Analyze reduces one city's raw forecast to its per-day summaries.
// It is a pure function: the same forecast always yields the same days,
// in the forecast's own day order.
func Analyze(f Forecast) CityData {
	days := make(CityData, 0, len(f.Forecasts))
	for _, day := range f.Forecasts {
		days = append(days, analyzeDay(day))
	}
	return days
}

func analyzeDay(day ForecastDay) DayData {
	out := DayData{Date: day.Date}

	var tempSum float64
	first, last := -1, -1

	for _, h := range day.Hours {
		if h.Hour < dayHoursStart || h.Hour > dayHoursEnd {
			continue
		}

		if first < 0 || h.Hour < first {
			first = h.Hour
		}
		if h.Hour > last {
			last = h.Hour
		}

		out.HoursCount++
		tempSum += h.Temp

		if !common.HasAny(h.Condition, precipitationMarkers...) {
			out.RelevantCondHours++
		}
	}

	if out.HoursCount > 0 {
		avg := tempSum / float64(out.HoursCount)
		out.TempAvg = &avg
		out.HoursStart = &first
		out.HoursEnd = &last
	}

	return out
}
