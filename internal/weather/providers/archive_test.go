package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func archiveTestClient(t *testing.T, handler http.HandlerFunc) *ArchiveClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewArchiveClient(srv.Client(), srv.URL)
	// Keep retries out of unit tests.
	c.httpCfg.Backoff = BackoffConfig{MaxRetries: 0, InitialInterval: time.Millisecond}
	return c
}

// TestArchiveClientFetch verifies the dump URL layout and the raw
// passthrough of the payload.
func TestArchiveClientFetch(t *testing.T) {
	payload := `{"forecasts": [{"date": "2024-06-01", "hours": []}]}`

	client := archiveTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/moscow-response.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	})

	raw, err := client.Fetch(context.Background(), "moscow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != payload {
		t.Fatalf("expected payload to pass through verbatim, got %s", raw)
	}
}

// TestArchiveClientMissingLocation verifies a 404 means "no data", not an
// error.
func TestArchiveClientMissingLocation(t *testing.T) {
	client := archiveTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	raw, err := client.Fetch(context.Background(), "atlantis")
	if err != nil {
		t.Fatalf("expected no error for a missing location, got %v", err)
	}
	if raw != nil {
		t.Fatalf("expected nil payload, got %s", raw)
	}
}

// TestArchiveClientEmptyPayload verifies blank bodies and empty objects are
// treated as absent data.
func TestArchiveClientEmptyPayload(t *testing.T) {
	for _, body := range []string{"", "{}", "null", "  \n"} {
		client := archiveTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		raw, err := client.Fetch(context.Background(), "moscow")
		if err != nil {
			t.Fatalf("body %q: unexpected error: %v", body, err)
		}
		if raw != nil {
			t.Fatalf("body %q: expected nil payload, got %s", body, raw)
		}
	}
}

// TestArchiveClientServerError verifies 5xx responses surface as errors.
func TestArchiveClientServerError(t *testing.T) {
	client := archiveTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.Fetch(context.Background(), "moscow"); err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}
