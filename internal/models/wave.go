package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MetersToFeet converts marine API wave heights to feet
const MetersToFeet = 3.28084

// Display strings for heights that have no number yet
const (
	PendingText     = "Loading..."
	UnavailableText = "N/A"
)

// WaveStatus tracks whether a height has been fetched
type WaveStatus int

const (
	WavePending     WaveStatus = iota // Fetch not finished
	WaveAvailable                     // Min/Max hold a value
	WaveUnavailable                   // Fetch failed or payload unusable
)

// WaveHeight is a wave height range in whole feet.
// A single reading has MinFeet == MaxFeet.
type WaveHeight struct {
	Status  WaveStatus
	MinFeet int
	MaxFeet int
}

// PendingWave is the value every spot starts a refresh cycle with
func PendingWave() WaveHeight {
	return WaveHeight{Status: WavePending}
}

// UnavailableWave marks a height that could not be fetched
func UnavailableWave() WaveHeight {
	return WaveHeight{Status: WaveUnavailable}
}

// FeetWave builds a single-value height
func FeetWave(feet int) WaveHeight {
	return WaveHeight{Status: WaveAvailable, MinFeet: feet, MaxFeet: feet}
}

// RangeWave builds a ranged height, swapping bounds if given backwards
func RangeWave(lo, hi int) WaveHeight {
	if lo > hi {
		lo, hi = hi, lo
	}
	return WaveHeight{Status: WaveAvailable, MinFeet: lo, MaxFeet: hi}
}

// WaveFromMeters rounds a sample in meters to the nearest whole foot
func WaveFromMeters(meters float64) WaveHeight {
	return FeetWave(int(math.Round(meters * MetersToFeet)))
}

// String renders the height as shown on a card
func (w WaveHeight) String() string {
	switch w.Status {
	case WavePending:
		return PendingText
	case WaveAvailable:
		if w.MinFeet == w.MaxFeet {
			return fmt.Sprintf("%dft", w.MinFeet)
		}
		return fmt.Sprintf("%d-%dft", w.MinFeet, w.MaxFeet)
	default:
		return UnavailableText
	}
}

// SortKey is the mean of the bounds, or 0 when no value is known
func (w WaveHeight) SortKey() float64 {
	if w.Status != WaveAvailable {
		return 0
	}
	return float64(w.MinFeet+w.MaxFeet) / 2
}

// Known reports whether the height carries a number
func (w WaveHeight) Known() bool {
	return w.Status == WaveAvailable
}

var waveTextPattern = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*ft$`)

// ParseWaveHeight maps a display string back to a WaveHeight.
// Anything that is not "<n>ft" or "<a>-<b>ft" is unavailable.
func ParseWaveHeight(s string) WaveHeight {
	s = strings.TrimSpace(s)
	if s == PendingText {
		return PendingWave()
	}

	m := waveTextPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return UnavailableWave()
	}

	lo, err := strconv.Atoi(m[1])
	if err != nil {
		return UnavailableWave()
	}
	if m[2] == "" {
		return FeetWave(lo)
	}
	hi, err := strconv.Atoi(m[2])
	if err != nil {
		return UnavailableWave()
	}
	return RangeWave(lo, hi)
}
