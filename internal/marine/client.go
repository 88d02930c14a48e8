package marine

import (
	"context"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

// WaveFetcher fetches the current wave height for a point.
// Implementations never return an error; failures come back as
// models.UnavailableWave().
type WaveFetcher interface {
	FetchWaveHeight(ctx context.Context, lat, lon float64) models.WaveHeight
}
