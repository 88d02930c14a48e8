package marine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// RefreshAll fetches every spot's wave height concurrently and waits for all
// of them. result[i] always belongs to spots[i], whatever order responses
// arrive in. One spot failing does not cancel the others.
func RefreshAll(ctx context.Context, fetcher WaveFetcher, spots []models.SurfSpot) []models.WaveHeight {
	heights := make([]models.WaveHeight, len(spots))

	var g errgroup.Group
	for i, spot := range spots {
		g.Go(func() error {
			heights[i] = fetcher.FetchWaveHeight(ctx, spot.Coordinates.Latitude, spot.Coordinates.Longitude)
			return nil
		})
	}
	// Failures come back as unavailable heights, never as errors
	_ = g.Wait()

	return heights
}
