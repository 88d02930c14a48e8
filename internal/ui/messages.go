package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgilberg1988/my-surf-spots/internal/marine"
	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// Message types for async operations

// locationMsg is sent when the geolocation probe finishes
type locationMsg struct {
	coords models.Coordinates
	err    error
}

// wavesRefreshedMsg is sent when every spot's fetch has settled.
// gen identifies the refresh that produced it.
type wavesRefreshedMsg struct {
	gen     int
	heights []models.WaveHeight
}

// flightOpenedMsg is sent after trying to open a flight search
type flightOpenedMsg struct {
	spot string
	err  error
}

// acquireLocation runs the probe in the background.
// The probe applies its own timeout.
func acquireLocation(probe LocationProbe) tea.Cmd {
	return func() tea.Msg {
		coords, err := probe.Acquire(context.Background())
		return locationMsg{coords: coords, err: err}
	}
}

// refreshWaves fetches all wave heights. No timeout: each fetch runs until it
// answers or fails.
func refreshWaves(fetcher marine.WaveFetcher, spots []models.SurfSpot, gen int) tea.Cmd {
	return func() tea.Msg {
		heights := marine.RefreshAll(context.Background(), fetcher, spots)
		return wavesRefreshedMsg{gen: gen, heights: heights}
	}
}

// openFlights opens the flight search for a spot
func openFlights(opener FlightOpener, spot models.SurfSpot) tea.Cmd {
	return func() tea.Msg {
		return flightOpenedMsg{spot: spot.Name, err: opener.Open(spot)}
	}
}
