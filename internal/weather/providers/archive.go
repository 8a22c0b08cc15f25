package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"
)

// ArchiveClient implements weather.ForecastClient against a static forecast
// archive: one JSON dump per location at <base>/<locationID>-response.json.
type ArchiveClient struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewArchiveClient(client *http.Client, baseURL string) *ArchiveClient {
	return &ArchiveClient{
		name:    "archive",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: defaultHTTPConfig(client),
		circuit: defaultBreaker("archive"),
	}
}

func (c *ArchiveClient) Name() string {
	return c.name
}

// Fetch downloads the archived forecast dump for the location. A missing
// dump or an empty payload yields (nil, nil): the archive simply has
// nothing for that location.
func (c *ArchiveClient) Fetch(ctx context.Context, locationID string) (json.RawMessage, error) {
	if locationID == "" {
		return nil, fmt.Errorf("archive location id is empty")
	}

	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s-response.json", c.baseURL, locationID)
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if isEmptyPayload(body) {
		return nil, nil
	}

	return json.RawMessage(body), nil
}

// isEmptyPayload reports whether the archive answered with nothing usable:
// a blank body, an empty object, or a JSON null.
func isEmptyPayload(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}
	s := string(trimmed)
	return s == "{}" || s == "null"
}
