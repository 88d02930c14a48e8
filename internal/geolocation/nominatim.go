package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

const (
	// DefaultNominatimURL is the OpenStreetMap search endpoint
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"
	userAgent           = "SurfSpots/1.0 (github.com/dgilberg1988/my-surf-spots)" // Required by Nominatim ToS
)

// QueryLocator geocodes a fixed place name ("Santa Cruz, CA", "02633")
type QueryLocator struct {
	query      string
	baseURL    string
	httpClient *http.Client
	minGap     time.Duration
	lastCall   time.Time
	mu         sync.Mutex
}

// NewQueryLocator creates a locator for query. An empty baseURL uses DefaultNominatimURL.
func NewQueryLocator(query, baseURL string) *QueryLocator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultNominatimURL
	}
	return &QueryLocator{
		query:      strings.TrimSpace(query),
		baseURL:    baseURL,
		httpClient: &http.Client{},
		minGap:     time.Second,
	}
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Source implements Locator
func (l *QueryLocator) Source() string {
	return "query:" + strings.ToLower(l.query)
}

// Locate implements Locator
func (l *QueryLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	if l.query == "" {
		return models.Coordinates{}, fmt.Errorf("%w: empty location query", ErrPositionUnavailable)
	}

	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("q", l.query)

	reqURL := fmt.Sprintf("%s?%s", l.baseURL, params.Encode())

	// Rate limiting: Nominatim requires 1 req/sec max
	if err := l.wait(ctx); err != nil {
		return models.Coordinates{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError("nominatim", resp.StatusCode); err != nil {
		return models.Coordinates{}, err
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: decoding response: %v", ErrPositionUnavailable, err)
	}

	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("%w: no results found for '%s'", ErrPositionUnavailable, l.query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: parsing latitude: %v", ErrPositionUnavailable, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: parsing longitude: %v", ErrPositionUnavailable, err)
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}

// wait blocks until minGap has passed since the previous call
func (l *QueryLocator) wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.lastCall.IsZero() {
		if remaining := l.minGap - time.Since(l.lastCall); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	l.lastCall = time.Now()
	return nil
}

// statusError maps provider HTTP statuses onto the package's sentinels
func statusError(provider string, status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s API returned status %d", ErrDenied, provider, status)
	default:
		return fmt.Errorf("%w: %s API returned status %d", ErrPositionUnavailable, provider, status)
	}
}
