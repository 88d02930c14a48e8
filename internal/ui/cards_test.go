package ui

import (
	"strings"
	"testing"

	"github.com/dgilberg1988/my-surf-spots/internal/catalog"
	"github.com/dgilberg1988/my-surf-spots/internal/models"
	"github.com/dgilberg1988/my-surf-spots/internal/ranking"
)

func TestRenderCards_Deterministic(t *testing.T) {
	spots := catalog.Default().Spots()
	user := newYork

	first := renderCards(ranking.Rank(spots, liveHeights(), &user, ranking.SortByDistance), 2, 60)
	second := renderCards(ranking.Rank(spots, liveHeights(), &user, ranking.SortByDistance), 2, 60)

	if first != second {
		t.Error("renderCards() output differs for identical inputs")
	}
}

func TestRenderCards_OneCardPerSpot(t *testing.T) {
	spots := catalog.Default().Spots()
	out := renderCards(ranking.Rank(spots, nil, nil, ranking.SortByWaveHeight), 0, 60)

	if got := strings.Count(out, "Find Flights →"); got != len(spots) {
		t.Errorf("rendered %d flight buttons, want %d", got, len(spots))
	}
	if got := strings.Count(out, models.PendingText); got != len(spots) {
		t.Errorf("rendered %d pending heights, want %d", got, len(spots))
	}
	if strings.Contains(out, "miles away") {
		t.Error("distance rendered without a user location")
	}
}

func TestRenderCards_Empty(t *testing.T) {
	out := renderCards(nil, 0, 60)
	if !strings.Contains(out, "No surf spots") {
		t.Errorf("renderCards(nil) = %q", out)
	}
}

func TestRenderCard_Contents(t *testing.T) {
	spot, _ := catalog.Default().ByName("Mavericks, California")
	miles := 2575.15
	card := ranking.Card{
		Spot:     spot,
		Wave:     models.FeetWave(12),
		WaveText: "12ft",
		Distance: &miles,
	}

	out := renderCard(card, true, 60)

	for _, want := range []string{"Mavericks", spot.Region, "12ft", "typical 15-25ft", "2,575 miles away", spot.FlightCost} {
		if !strings.Contains(out, want) {
			t.Errorf("renderCard() missing %q", want)
		}
	}
}
