package geolocation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

type fakeLocator struct {
	source string
	coords models.Coordinates
	err    error
	block  bool
	calls  int
}

func (f *fakeLocator) Source() string { return f.source }

func (f *fakeLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return models.Coordinates{}, ctx.Err()
	}
	return f.coords, f.err
}

type memoryFixes struct {
	fixes map[string][]fix
}

type fix struct {
	coords models.Coordinates
	at     time.Time
}

func newMemoryFixes() *memoryFixes {
	return &memoryFixes{fixes: map[string][]fix{}}
}

func (m *memoryFixes) Latest(ctx context.Context, source string, notBefore time.Time) (models.Coordinates, bool, error) {
	list := m.fixes[source]
	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].at.Before(notBefore) {
			return list[i].coords, true, nil
		}
	}
	return models.Coordinates{}, false, nil
}

func (m *memoryFixes) Save(ctx context.Context, source string, coords models.Coordinates, at time.Time) error {
	m.fixes[source] = append(m.fixes[source], fix{coords: coords, at: at})
	return nil
}

var santaCruz = models.Coordinates{Latitude: 36.9741, Longitude: -122.0308}

func TestProbe_Unsupported(t *testing.T) {
	probe := NewProbe(DefaultOptions(), nil, nil, nil, nil)

	_, err := probe.Acquire(context.Background())
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestProbe_PicksLocator(t *testing.T) {
	tests := []struct {
		name         string
		highAccuracy bool
		hasPrecise   bool
		hasCoarse    bool
		wantSource   string
	}{
		{"high accuracy prefers query", true, true, true, "query"},
		{"low accuracy prefers ip", false, true, true, "ip"},
		{"high accuracy without query uses ip", true, false, true, "ip"},
		{"low accuracy without ip uses query", false, true, false, "query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var precise, coarse Locator
			if tt.hasPrecise {
				precise = &fakeLocator{source: "query"}
			}
			if tt.hasCoarse {
				coarse = &fakeLocator{source: "ip"}
			}
			opts := DefaultOptions()
			opts.HighAccuracy = tt.highAccuracy

			probe := NewProbe(opts, precise, coarse, nil, nil)
			require.Equal(t, tt.wantSource, probe.pick().Source())
		})
	}
}

func TestProbe_Success(t *testing.T) {
	locator := &fakeLocator{source: "ip", coords: santaCruz}
	fixes := newMemoryFixes()
	probe := NewProbe(DefaultOptions(), nil, locator, fixes, nil)

	got, err := probe.Acquire(context.Background())
	require.NoError(t, err)
	require.Equal(t, santaCruz, got)
	require.Len(t, fixes.fixes["ip"], 1)
}

func TestProbe_ReusesRecentFix(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	fixes := newMemoryFixes()
	require.NoError(t, fixes.Save(context.Background(), "ip", santaCruz, now.Add(-4*time.Minute)))

	locator := &fakeLocator{source: "ip", err: errors.New("should not be called")}
	probe := NewProbe(DefaultOptions(), nil, locator, fixes, nil)
	probe.now = func() time.Time { return now }

	got, err := probe.Acquire(context.Background())
	require.NoError(t, err)
	require.Equal(t, santaCruz, got)
	require.Zero(t, locator.calls)
}

func TestProbe_IgnoresStaleFix(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	fixes := newMemoryFixes()
	require.NoError(t, fixes.Save(context.Background(), "ip", santaCruz, now.Add(-6*time.Minute)))

	fresh := models.Coordinates{Latitude: 1, Longitude: 2}
	locator := &fakeLocator{source: "ip", coords: fresh}
	probe := NewProbe(DefaultOptions(), nil, locator, fixes, nil)
	probe.now = func() time.Time { return now }

	got, err := probe.Acquire(context.Background())
	require.NoError(t, err)
	require.Equal(t, fresh, got)
	require.Equal(t, 1, locator.calls)
}

func TestProbe_Timeout(t *testing.T) {
	opts := DefaultOptions()
	opts.Timeout = 20 * time.Millisecond
	probe := NewProbe(opts, nil, &fakeLocator{source: "ip", block: true}, nil, nil)

	_, err := probe.Acquire(context.Background())
	require.ErrorIs(t, err, ErrTimeout)
}

func TestProbe_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"denied passes through", fmt.Errorf("%w: status 403", ErrDenied), ErrDenied},
		{"unavailable passes through", fmt.Errorf("%w: no results", ErrPositionUnavailable), ErrPositionUnavailable},
		{"unknown becomes unavailable", errors.New("connection refused"), ErrPositionUnavailable},
		{"deadline becomes timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewProbe(DefaultOptions(), nil, &fakeLocator{source: "ip", err: tt.err}, nil, nil)

			_, err := probe.Acquire(context.Background())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
