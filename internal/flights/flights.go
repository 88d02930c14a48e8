// Package flights builds and opens flight searches for a surf spot
package flights

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// SearchBaseURL is the flight-search page queries are appended to
const SearchBaseURL = "https://www.google.com/travel/flights"

// Destination picks the search term for a spot. City names come first
// because several of these airports are poorly indexed by code.
func Destination(spot models.SurfSpot) string {
	if city := strings.TrimSpace(spot.City); city != "" {
		return city
	}
	if code := strings.TrimSpace(spot.Airport); code != "" {
		return strings.ToUpper(code)
	}
	return spot.Name
}

// SearchURL builds the flight search URL for a spot
func SearchURL(spot models.SurfSpot) string {
	params := url.Values{}
	params.Set("q", "Flights to "+Destination(spot))
	return fmt.Sprintf("%s?%s", SearchBaseURL, params.Encode())
}

// Opener launches a flight search in a new browser window
type Opener struct {
	openURL func(string) error
	logger  *slog.Logger
}

// NewOpener creates an opener backed by the system browser
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Opener{
		openURL: browser.OpenURL,
		logger:  logger.With("component", "flights"),
	}
}

// Open opens the flight search for spot. The error is only logged by callers;
// a blocked or missing browser is not recovered from.
func (o *Opener) Open(spot models.SurfSpot) error {
	target := SearchURL(spot)
	o.logger.Info("opening flight search", "spot", spot.Name, "url", target)
	if err := o.openURL(target); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	return nil
}
