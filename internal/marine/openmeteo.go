package marine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// DefaultBaseURL is the Open-Meteo marine forecast endpoint
const DefaultBaseURL = "https://marine-api.open-meteo.com/v1/marine"

// OpenMeteoClient implements WaveFetcher using the Open-Meteo marine API
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewOpenMeteoClient creates a marine client. An empty baseURL uses DefaultBaseURL.
// The HTTP client has no timeout of its own; the caller's context bounds each fetch.
func NewOpenMeteoClient(baseURL string, logger *slog.Logger) *OpenMeteoClient {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenMeteoClient{
		baseURL:    base,
		httpClient: &http.Client{},
		userAgent:  "SurfSpots/1.0 (github.com/dgilberg1988/my-surf-spots)",
		logger:     logger.With("component", "marine"),
	}
}

// FetchWaveHeight returns the first hourly wave height sample in whole feet,
// or models.UnavailableWave() if anything goes wrong.
func (c *OpenMeteoClient) FetchWaveHeight(ctx context.Context, lat, lon float64) models.WaveHeight {
	meters, err := c.firstWaveSample(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("wave height unavailable", "lat", lat, "lon", lon, "error", err)
		return models.UnavailableWave()
	}
	return models.WaveFromMeters(meters)
}

// firstWaveSample does the request and returns hourly.wave_height[0] in meters
func (c *OpenMeteoClient) firstWaveSample(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Add("hourly", "wave_height")
	params.Add("timezone", "auto")
	params.Add("forecast_days", "1")

	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch marine forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var marineResp marineResponse
	if err := json.NewDecoder(resp.Body).Decode(&marineResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(marineResp.Hourly.WaveHeight) == 0 {
		return 0, fmt.Errorf("response has no wave_height samples")
	}
	first := marineResp.Hourly.WaveHeight[0]
	if first == nil {
		return 0, fmt.Errorf("first wave_height sample is null")
	}

	return *first, nil
}

// Internal types for Open-Meteo marine responses

type marineResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Hourly    struct {
		Time       []string   `json:"time"`
		WaveHeight []*float64 `json:"wave_height"` // meters, null over land
	} `json:"hourly"`
}
