package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather-pipeline/internal/weather"
)

// OpenMeteoClient implements weather.ForecastClient against the Open-Meteo
// hourly forecast API. Location ids are "City" or "City,Country" and are
// resolved to coordinates through the Google geocoding API. The hourly
// payload is normalized into the archive wire shape so the analysis stage
// does not care which source produced a file.
type OpenMeteoClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoClient(client *http.Client, geocoderAPIKey string) *OpenMeteoClient {
	// kelvins/geocoder configuration is package-global.
	geocoder.ApiKey = geocoderAPIKey

	return &OpenMeteoClient{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: defaultBreaker("openmeteo"),
	}
}

func (c *OpenMeteoClient) Name() string {
	return c.name
}

func (c *OpenMeteoClient) Fetch(ctx context.Context, locationID string) (json.RawMessage, error) {
	if locationID == "" {
		return nil, fmt.Errorf("openmeteo location id is empty")
	}

	lat, lon, err := resolveCoordinates(locationID)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", locationID, err)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("hourly", "temperature_2m,weathercode")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Time        []string  `json:"time"`
			Temperature []float64 `json:"temperature_2m"`
			WeatherCode []int     `json:"weathercode"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	forecast := normalizeHourly(payload.Hourly.Time, payload.Hourly.Temperature, payload.Hourly.WeatherCode)
	if len(forecast.Forecasts) == 0 {
		return nil, nil
	}

	return json.Marshal(forecast)
}

// resolveCoordinates turns "City" or "City,Country" into lat/lon.
func resolveCoordinates(locationID string) (lat, lon float64, err error) {
	addr := geocoder.Address{City: locationID}
	if city, country, ok := strings.Cut(locationID, ","); ok {
		addr.City = strings.TrimSpace(city)
		addr.Country = strings.TrimSpace(country)
	}

	loc, err := geocoder.Geocoding(addr)
	if err != nil {
		return 0, 0, err
	}
	return loc.Latitude, loc.Longitude, nil
}

// normalizeHourly groups Open-Meteo's parallel hourly arrays into per-day
// hour lists, keeping the API's chronological order.
func normalizeHourly(times []string, temps []float64, codes []int) weather.Forecast {
	var forecast weather.Forecast
	dayIndex := make(map[string]int)

	for i, raw := range times {
		if i >= len(temps) || i >= len(codes) {
			break
		}

		ts, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			continue
		}

		date := ts.Format("2006-01-02")
		idx, ok := dayIndex[date]
		if !ok {
			forecast.Forecasts = append(forecast.Forecasts, weather.ForecastDay{Date: date})
			idx = len(forecast.Forecasts) - 1
			dayIndex[date] = idx
		}

		forecast.Forecasts[idx].Hours = append(forecast.Forecasts[idx].Hours, weather.ForecastHour{
			Hour:      ts.Hour(),
			Temp:      temps[i],
			Condition: mapOpenMeteoCondition(codes[i]),
		})
	}

	return forecast
}

// mapOpenMeteoCondition maps Open-Meteo weather codes onto the condition
// vocabulary used by the archive dumps (simplified).
func mapOpenMeteoCondition(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code >= 1 && code <= 2:
		return "partly-cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case (code >= 51 && code <= 57) || (code >= 80 && code <= 82):
		return "light-rain"
	case code >= 61 && code <= 67:
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "cloudy"
	}
}
