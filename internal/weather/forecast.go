package weather

// Forecast is the decoded shape of a raw forecast payload. Every forecast
// source normalizes to this: a list of days, each with hourly readings.
type Forecast struct {
	Forecasts []ForecastDay `json:"forecasts"`
}

// ForecastDay holds one day's hourly readings.
type ForecastDay struct {
	Date  string         `json:"date"`
	Hours []ForecastHour `json:"hours"`
}

// ForecastHour is a single hourly reading.
type ForecastHour struct {
	Hour      int     `json:"hour"`
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
}
