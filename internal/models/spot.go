package models

// Coordinates is a point in WGS84 degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SurfSpot is a fixed catalog entry.
// Airport, City and Country only feed the flight search URL.
type SurfSpot struct {
	Name        string      `json:"name"`         // Unique display key
	Coordinates Coordinates `json:"coordinates"`  // Break location
	FlightCost  string      `json:"flight_cost"`  // Free-form estimate, e.g. "$400-600"
	Region      string      `json:"region"`       // e.g. "Pacific", "Asia"
	Airport     string      `json:"airport"`      // IATA code, e.g. "HNL"
	City        string      `json:"city"`         // Nearest city with an airport
	Country     string      `json:"country"`      // ISO 3166-1 alpha-2
	TypicalSurf string      `json:"typical_surf"` // Usual seasonal range, e.g. "8-12ft"
}
