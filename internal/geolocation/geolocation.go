// Package geolocation finds the user's position once per session.
//
// A Probe picks a Locator (a geocoded --location query for high accuracy,
// or an IP lookup otherwise), applies a timeout, and reuses a recent fix
// from the FixCache when one is young enough.
package geolocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgilberg1988/my-surf-spots/internal/models"
)

var (
	ErrUnsupported         = errors.New("geolocation unsupported")
	ErrDenied              = errors.New("geolocation denied")
	ErrTimeout             = errors.New("geolocation timed out")
	ErrPositionUnavailable = errors.New("position unavailable")
)

// Options mirror a one-shot "get current position" request
type Options struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// DefaultOptions asks for a precise fix within 10s, accepting one up to 5 minutes old
func DefaultOptions() Options {
	return Options{
		HighAccuracy: true,
		Timeout:      10 * time.Second,
		MaximumAge:   5 * time.Minute,
	}
}

// Locator resolves the user's position from one source
type Locator interface {
	// Locate returns the current position. Errors should wrap ErrDenied or
	// ErrPositionUnavailable where the cause is known.
	Locate(ctx context.Context) (models.Coordinates, error)

	// Source identifies the locator in the fix cache
	Source() string
}

// FixCache stores previously acquired fixes
type FixCache interface {
	Latest(ctx context.Context, source string, notBefore time.Time) (models.Coordinates, bool, error)
	Save(ctx context.Context, source string, coords models.Coordinates, at time.Time) error
}

// Probe acquires the user's location
type Probe struct {
	opts    Options
	precise Locator
	coarse  Locator
	fixes   FixCache
	now     func() time.Time
	logger  *slog.Logger
}

// NewProbe creates a probe. precise, coarse and fixes may each be nil;
// with no locator at all Acquire returns ErrUnsupported.
func NewProbe(opts Options, precise, coarse Locator, fixes FixCache, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Probe{
		opts:    opts,
		precise: precise,
		coarse:  coarse,
		fixes:   fixes,
		now:     time.Now,
		logger:  logger.With("component", "geolocation"),
	}
}

// Acquire returns the user's coordinates or one of the package's sentinel errors
func (p *Probe) Acquire(ctx context.Context) (models.Coordinates, error) {
	locator := p.pick()
	if locator == nil {
		return models.Coordinates{}, ErrUnsupported
	}
	source := locator.Source()

	if coords, ok := p.cachedFix(ctx, source); ok {
		p.logger.Debug("reusing cached fix", "source", source)
		return coords, nil
	}

	locateCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		locateCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	coords, err := locator.Locate(locateCtx)
	if err != nil {
		err = classify(locateCtx, err)
		p.logger.Info("geolocation failed", "source", source, "error", err)
		return models.Coordinates{}, err
	}

	if p.fixes != nil {
		if err := p.fixes.Save(ctx, source, coords, p.now()); err != nil {
			p.logger.Warn("saving fix", "source", source, "error", err)
		}
	}

	p.logger.Info("location acquired", "source", source)
	return coords, nil
}

// pick chooses the locator for the configured accuracy
func (p *Probe) pick() Locator {
	if p.opts.HighAccuracy && p.precise != nil {
		return p.precise
	}
	if p.coarse != nil {
		return p.coarse
	}
	return p.precise
}

func (p *Probe) cachedFix(ctx context.Context, source string) (models.Coordinates, bool) {
	if p.fixes == nil || p.opts.MaximumAge <= 0 {
		return models.Coordinates{}, false
	}
	coords, ok, err := p.fixes.Latest(ctx, source, p.now().Add(-p.opts.MaximumAge))
	if err != nil {
		p.logger.Warn("reading cached fix", "source", source, "error", err)
		return models.Coordinates{}, false
	}
	return coords, ok
}

// classify maps a locator error onto the package's sentinels
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, ErrDenied), errors.Is(err, ErrPositionUnavailable), errors.Is(err, ErrUnsupported):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
	}
}
