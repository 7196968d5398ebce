// Package geo acquires device coordinates on a best-effort basis: a denied,
// failed or slow lookup yields no coordinates instead of an error.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agrox/fieldops/internal/goroutine"
)

const (
	DefaultTimeout = 8 * time.Second
	MinTimeout     = 5 * time.Second
	MaxTimeout     = 10 * time.Second
)

var (
	ErrDenied      = errors.New("geo: permission denied")
	ErrUnavailable = errors.New("geo: position unavailable")
)

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the position as "lat, lng" with 6 decimals.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// Locator produces the current position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

// ClampTimeout keeps a lookup timeout within 5 to 10 seconds; zero means the default.
func ClampTimeout(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultTimeout
	case d < MinTimeout:
		return MinTimeout
	case d > MaxTimeout:
		return MaxTimeout
	}
	return d
}

// Acquire waits for loc up to timeout and returns nil on any failure.
func Acquire(ctx context.Context, loc Locator, timeout time.Duration) *Coordinates {
	if loc == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		c   Coordinates
		err error
	}
	done := make(chan result, 1)
	// a panicking locator is logged and ends in the timeout branch
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		c, err := loc.Locate(ctx)
		done <- result{c, err}
	})

	select {
	case r := <-done:
		if r.err != nil || !valid(r.c) {
			return nil
		}
		return &r.c
	case <-ctx.Done():
		return nil
	}
}

func valid(c Coordinates) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// FromRequest builds a locator from the position fields a device submitted
// with a form. status "denied" means the user refused the permission prompt.
func FromRequest(lat, lng, status string) Locator {
	return LocatorFunc(func(ctx context.Context) (Coordinates, error) {
		if strings.EqualFold(strings.TrimSpace(status), "denied") {
			return Coordinates{}, ErrDenied
		}
		latText, lngText := strings.TrimSpace(lat), strings.TrimSpace(lng)
		if latText == "" || lngText == "" {
			return Coordinates{}, ErrUnavailable
		}
		la, err := strconv.ParseFloat(latText, 64)
		if err != nil {
			return Coordinates{}, ErrUnavailable
		}
		lo, err := strconv.ParseFloat(lngText, 64)
		if err != nil {
			return Coordinates{}, ErrUnavailable
		}
		return Coordinates{Latitude: la, Longitude: lo}, nil
	})
}
