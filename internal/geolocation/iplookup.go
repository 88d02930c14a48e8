package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// DefaultIPLookupURL answers with the caller's approximate position
const DefaultIPLookupURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,countryCode"

// IPLocator estimates position from the public IP address (city level)
type IPLocator struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPLocator creates an IP locator. An empty baseURL uses DefaultIPLookupURL.
func NewIPLocator(baseURL string) *IPLocator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultIPLookupURL
	}
	return &IPLocator{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type ipLookupResponse struct {
	Status      string  `json:"status"` // "success" or "fail"
	Message     string  `json:"message"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	City        string  `json:"city"`
	CountryCode string  `json:"countryCode"`
}

// Source implements Locator
func (l *IPLocator) Source() string {
	return "ip"
}

// Locate implements Locator
func (l *IPLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError("ip lookup", resp.StatusCode); err != nil {
		return models.Coordinates{}, err
	}

	var result ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: decoding response: %v", ErrPositionUnavailable, err)
	}

	if result.Status != "success" {
		return models.Coordinates{}, fmt.Errorf("%w: ip lookup failed: %s", ErrPositionUnavailable, result.Message)
	}

	return models.Coordinates{Latitude: result.Lat, Longitude: result.Lon}, nil
}
