package cache

import (
	"errors"
	"log/slog"
)

// ErrInvalidKey is returned when GetOrBuild is called with the zero key.
var ErrInvalidKey = errors.New("cache: invalid resource key")

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits counts lookups that found an entry.
	Hits uint64
	// Misses counts lookups that found nothing.
	Misses uint64
	// Builds counts successful builds.
	Builds uint64
	// Failures counts builds that returned an error.
	Failures uint64
}

// HitRate returns the fraction of lookups that hit, or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("len", s.Len),
		slog.Uint64("hits", s.Hits),
		slog.Uint64("misses", s.Misses),
		slog.Uint64("builds", s.Builds),
		slog.Uint64("failures", s.Failures),
	)
}
