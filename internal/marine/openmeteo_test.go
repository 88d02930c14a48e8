package marine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

func TestNewOpenMeteoClient(t *testing.T) {
	client := NewOpenMeteoClient("", nil)

	if client == nil {
		t.Fatal("NewOpenMeteoClient() returned nil")
	}

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", client.baseURL, DefaultBaseURL)
	}

	if client.httpClient.Timeout != 0 {
		t.Errorf("timeout = %v, want none", client.httpClient.Timeout)
	}

	if client.userAgent == "" {
		t.Error("userAgent should not be empty")
	}
}

func TestOpenMeteoClient_FetchWaveHeight(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("latitude") != "21.6611" {
			t.Errorf("latitude param = %s, want 21.6611", query.Get("latitude"))
		}
		if query.Get("longitude") != "-158.0522" {
			t.Errorf("longitude param = %s, want -158.0522", query.Get("longitude"))
		}
		if query.Get("hourly") != "wave_height" {
			t.Error("hourly param should be 'wave_height'")
		}
		if query.Get("timezone") != "auto" {
			t.Error("timezone param should be 'auto'")
		}
		if query.Get("forecast_days") != "1" {
			t.Error("forecast_days param should be '1'")
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header not set")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": 21.625,
			"longitude": -158.04167,
			"timezone": "Pacific/Honolulu",
			"hourly_units": {"time": "iso8601", "wave_height": "m"},
			"hourly": {
				"time": ["2025-01-10T00:00", "2025-01-10T01:00"],
				"wave_height": [2.0, 2.4]
			}
		}`))
	}))
	defer server.Close()

	client := NewOpenMeteoClient(server.URL, nil)

	got := client.FetchWaveHeight(context.Background(), 21.6611, -158.0522)
	if got.String() != "7ft" {
		t.Errorf("FetchWaveHeight() = %q, want 7ft", got.String())
	}
	if got.Status != models.WaveAvailable {
		t.Errorf("Status = %v, want WaveAvailable", got.Status)
	}
}

func TestOpenMeteoClient_Unavailable(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"404 not found", http.StatusNotFound, `{"error": true}`},
		{"500 server error", http.StatusInternalServerError, "error"},
		{"503 unavailable", http.StatusServiceUnavailable, "error"},
		{"malformed json", http.StatusOK, `{"hourly": `},
		{"no samples", http.StatusOK, `{"hourly": {"time": [], "wave_height": []}}`},
		{"null sample", http.StatusOK, `{"hourly": {"time": ["2025-01-10T00:00"], "wave_height": [null]}}`},
		{"missing hourly", http.StatusOK, `{"latitude": 1}`},
		{"wrong type", http.StatusOK, `{"hourly": {"wave_height": ["big"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewOpenMeteoClient(server.URL, nil)

			got := client.FetchWaveHeight(context.Background(), 37.4936, -122.4694)
			if got.String() != "N/A" {
				t.Errorf("FetchWaveHeight() = %q, want N/A", got.String())
			}
		})
	}
}

func TestOpenMeteoClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewOpenMeteoClient(url, nil)

	if got := client.FetchWaveHeight(context.Background(), 0, 0); got.String() != "N/A" {
		t.Errorf("FetchWaveHeight() on closed server = %q, want N/A", got.String())
	}
}
