// Package ranking merges live data into the catalog and orders it for display
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgilberg1988/my-surf-spots/internal/flights"
	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// SortMode selects the single key cards are ordered by
type SortMode string

const (
	SortByWaveHeight SortMode = "waves"    // Biggest first
	SortByDistance   SortMode = "distance" // Closest first, needs a user location
)

// ParseSortMode accepts "waves" or "distance" (case-insensitive)
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortByWaveHeight, "":
		return SortByWaveHeight, nil
	case SortByDistance:
		return SortByDistance, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q (want waves or distance)", s)
	}
}

// Toggle returns the other mode
func (m SortMode) Toggle() SortMode {
	if m == SortByDistance {
		return SortByWaveHeight
	}
	return SortByDistance
}

// Label is the human name shown in the UI
func (m SortMode) Label() string {
	if m == SortByDistance {
		return "distance"
	}
	return "wave height"
}

// Effective returns the mode Rank will actually use. Distance needs a user
// location; without one wave height is used.
func Effective(mode SortMode, user *models.Coordinates) SortMode {
	if mode == SortByDistance && user != nil {
		return SortByDistance
	}
	return SortByWaveHeight
}

// Card is one rendered entry
type Card struct {
	Position  int               `json:"position"` // Index in the catalog
	Spot      models.SurfSpot   `json:"spot"`
	Wave      models.WaveHeight `json:"-"`
	WaveText  string            `json:"wave_height"`
	Distance  *float64          `json:"distance_miles,omitempty"`
	FlightURL string            `json:"flight_url"`
}

// DistanceText is the card's distance line, or "" without a user location
func (c Card) DistanceText() string {
	if c.Distance == nil {
		return ""
	}
	return FormatDistance(*c.Distance)
}

// Rank builds one card per spot and orders them by mode. heights[i] belongs to
// spots[i]; missing entries count as pending. Ties keep catalog order.
// Rank does not modify its inputs.
func Rank(spots []models.SurfSpot, heights []models.WaveHeight, user *models.Coordinates, mode SortMode) []Card {
	cards := make([]Card, len(spots))
	for i, spot := range spots {
		wave := models.PendingWave()
		if i < len(heights) {
			wave = heights[i]
		}

		card := Card{
			Position:  i,
			Spot:      spot,
			Wave:      wave,
			WaveText:  wave.String(),
			FlightURL: flights.SearchURL(spot),
		}
		if user != nil {
			d := DistanceBetween(*user, spot.Coordinates)
			card.Distance = &d
		}
		cards[i] = card
	}

	switch Effective(mode, user) {
	case SortByDistance:
		sort.SliceStable(cards, func(i, j int) bool {
			return *cards[i].Distance < *cards[j].Distance
		})
	default:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Wave.SortKey() > cards[j].Wave.SortKey()
		})
	}

	return cards
}
