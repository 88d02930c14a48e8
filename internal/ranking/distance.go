package ranking

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

const earthRadiusMiles = 3959.0

// HaversineDistance calculates distance in miles between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// DistanceBetween is HaversineDistance for two coordinate pairs
func DistanceBetween(from, to models.Coordinates) float64 {
	return HaversineDistance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// FormatDistance renders miles as "2,382 miles away"
func FormatDistance(miles float64) string {
	return fmt.Sprintf("%s miles away", humanize.Comma(int64(math.Round(miles))))
}
