package marine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// stubFetcher answers by latitude and delays so that earlier spots finish last
type stubFetcher struct {
	heights map[float64]models.WaveHeight
	calls   atomic.Int32
}

func (s *stubFetcher) FetchWaveHeight(ctx context.Context, lat, lon float64) models.WaveHeight {
	s.calls.Add(1)
	time.Sleep(time.Duration(50-int(lat)) * time.Millisecond)
	if h, ok := s.heights[lat]; ok {
		return h
	}
	return models.UnavailableWave()
}

func spotsAt(lats ...float64) []models.SurfSpot {
	spots := make([]models.SurfSpot, len(lats))
	for i, lat := range lats {
		spots[i] = models.SurfSpot{
			Name:        string(rune('A' + i)),
			Coordinates: models.Coordinates{Latitude: lat},
		}
	}
	return spots
}

func TestRefreshAll_OneFailure(t *testing.T) {
	fetcher := &stubFetcher{heights: map[float64]models.WaveHeight{
		1: models.FeetWave(3),
		2: models.FeetWave(5),
		// 3 fails
		4: models.FeetWave(9),
		5: models.FeetWave(1),
	}}

	heights := RefreshAll(context.Background(), fetcher, spotsAt(1, 2, 3, 4, 5))

	require.Len(t, heights, 5)
	require.Equal(t, int32(5), fetcher.calls.Load())
	require.Equal(t, "3ft", heights[0].String())
	require.Equal(t, "5ft", heights[1].String())
	require.Equal(t, "N/A", heights[2].String())
	require.Equal(t, "9ft", heights[3].String())
	require.Equal(t, "1ft", heights[4].String())
}

func TestRefreshAll_RunsConcurrently(t *testing.T) {
	fetcher := &stubFetcher{heights: map[float64]models.WaveHeight{}}

	start := time.Now()
	RefreshAll(context.Background(), fetcher, spotsAt(0, 0, 0, 0, 0))

	// five sequential 50ms fetches would take 250ms
	require.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestRefreshAll_Empty(t *testing.T) {
	fetcher := &stubFetcher{}

	heights := RefreshAll(context.Background(), fetcher, nil)

	require.Empty(t, heights)
	require.Zero(t, fetcher.calls.Load())
}
