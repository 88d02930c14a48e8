// Package catalog holds the fixed list of surf spots shown by the widget
package catalog

import (
	"fmt"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// Catalog is an ordered, read-only set of surf spots.
// Order is the tie-break order used when ranking.
type Catalog struct {
	spots []models.SurfSpot
}

// New builds a catalog, rejecting empty or duplicate names
func New(spots []models.SurfSpot) (*Catalog, error) {
	seen := make(map[string]bool, len(spots))
	for i, spot := range spots {
		if spot.Name == "" {
			return nil, fmt.Errorf("spot %d has no name", i)
		}
		if seen[spot.Name] {
			return nil, fmt.Errorf("duplicate spot name %q", spot.Name)
		}
		seen[spot.Name] = true
	}

	c := &Catalog{spots: make([]models.SurfSpot, len(spots))}
	copy(c.spots, spots)
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(defaultSpots)
	if err != nil {
		panic(err)
	}
	return c
}

// Spots returns a copy of the entries in catalog order
func (c *Catalog) Spots() []models.SurfSpot {
	out := make([]models.SurfSpot, len(c.spots))
	copy(out, c.spots)
	return out
}

// Len returns the number of spots
func (c *Catalog) Len() int {
	return len(c.spots)
}

// At returns the spot at a catalog position
func (c *Catalog) At(i int) (models.SurfSpot, bool) {
	if i < 0 || i >= len(c.spots) {
		return models.SurfSpot{}, false
	}
	return c.spots[i], true
}

// ByName finds a spot by its display name
func (c *Catalog) ByName(name string) (models.SurfSpot, bool) {
	for _, spot := range c.spots {
		if spot.Name == name {
			return spot, true
		}
	}
	return models.SurfSpot{}, false
}

var defaultSpots = []models.SurfSpot{
	{
		Name:        "Pipeline, Hawaii",
		Coordinates: models.Coordinates{Latitude: 21.6611, Longitude: -158.0522},
		FlightCost:  "$400-600",
		Region:      "Pacific",
		Airport:     "HNL",
		City:        "Honolulu",
		Country:     "US",
		TypicalSurf: "8-12ft",
	},
	{
		Name:        "Jeffreys Bay, South Africa",
		Coordinates: models.Coordinates{Latitude: -34.0489, Longitude: 24.9087},
		FlightCost:  "$800-1200",
		Region:      "Africa",
		Airport:     "PLZ",
		City:        "Port Elizabeth",
		Country:     "ZA",
		TypicalSurf: "6-8ft",
	},
	{
		Name:        "Mavericks, California",
		Coordinates: models.Coordinates{Latitude: 37.4936, Longitude: -122.4694},
		FlightCost:  "$200-400",
		Region:      "Pacific",
		Airport:     "SFO",
		City:        "San Francisco",
		Country:     "US",
		TypicalSurf: "15-25ft",
	},
	{
		Name:        "Uluwatu, Bali",
		Coordinates: models.Coordinates{Latitude: -8.8290, Longitude: 115.0940},
		FlightCost:  "$600-900",
		Region:      "Asia",
		Airport:     "DPS",
		City:        "Denpasar",
		Country:     "ID",
		TypicalSurf: "4-6ft",
	},
	{
		Name:        "Teahupo'o, Tahiti",
		Coordinates: models.Coordinates{Latitude: -17.8421, Longitude: -149.2674},
		FlightCost:  "$700-1100",
		Region:      "Pacific",
		Airport:     "PPT",
		City:        "Papeete",
		Country:     "PF",
		TypicalSurf: "6-10ft",
	},
}
