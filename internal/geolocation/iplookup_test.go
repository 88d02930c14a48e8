package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIPLocator_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "success", "lat": 37.7749, "lon": -122.4194, "city": "San Francisco", "countryCode": "US"}`))
	}))
	defer server.Close()

	got, err := NewIPLocator(server.URL).Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 37.7749, got.Latitude)
	require.Equal(t, -122.4194, got.Longitude)
}

func TestIPLocator_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
	}{
		{"lookup failed", http.StatusOK, `{"status": "fail", "message": "private range"}`, ErrPositionUnavailable},
		{"malformed", http.StatusOK, `nope`, ErrPositionUnavailable},
		{"rate limited", http.StatusTooManyRequests, ``, ErrDenied},
		{"unavailable", http.StatusBadGateway, ``, ErrPositionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewIPLocator(server.URL).Locate(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
