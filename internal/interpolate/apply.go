package interpolate

import (
	"errors"
	"fmt"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// Run spreads out pairings that collapsed onto one coordinate. Locations are
// rewritten in place; times, records and origins are left alone.
func Run(pairings []correlate.Pairing, cfg Config) (Stats, error) {
	if cfg.Mode == Off || len(pairings) < 2 {
		return Stats{}, nil
	}
	if cfg.Method == Path && len(cfg.ReferencePath) == 0 {
		return Stats{}, errors.New("path interpolation needs a reference path")
	}

	clusters := FindClusters(pairings)

	var ranges []Range
	switch cfg.Mode {
	case Auto:
		ranges = AutoRanges(clusters)
	case Manual:
		var err error
		ranges, err = ParseRanges(cfg.Ranges, len(pairings))
		if err != nil {
			return Stats{Clusters: len(clusters)}, err
		}
	default:
		return Stats{}, fmt.Errorf("unsupported interpolation mode %v", cfg.Mode)
	}

	stats, err := Apply(pairings, ranges, cfg)
	stats.Clusters = len(clusters)
	if err != nil {
		return stats, err
	}

	logger.Info("duplicate interpolation finished",
		logger.String("mode", cfg.Mode.String()),
		logger.String("method", cfg.Method.String()),
		logger.Int("clusters", stats.Clusters),
		logger.Int("ranges", stats.Ranges),
		logger.Int("rewritten", stats.Rewritten),
		logger.Int("skipped", stats.Skipped))

	return stats, nil
}

// Apply interpolates each range. The origin is the location at Start and the
// target the location at End+1, both read before any rewriting. A range
// ending on the last pairing, or whose target equals its origin, is skipped.
// Only pairings from original tracks are moved, and none is moved twice.
func Apply(pairings []correlate.Pairing, ranges []Range, cfg Config) (Stats, error) {
	stats := Stats{Ranges: len(ranges)}

	pos := make(map[int]int, len(pairings))
	locations := make([]geo.Coordinate, len(pairings))
	for i, p := range pairings {
		pos[p.Index] = i
		locations[i] = p.Sample.Location
	}

	for _, r := range ranges {
		startPos, ok := pos[r.Start]
		if !ok || r.End < r.Start {
			return stats, fmt.Errorf("range %s: %w", r, ErrInvalidRange)
		}

		targetPos, ok := pos[r.End+1]
		if !ok {
			stats.Skipped++
			logger.Debug("range ends on last pairing, nothing to move towards", logger.String("range", r.String()))
			continue
		}

		origin := locations[startPos]
		target := locations[targetPos]
		if origin == target {
			stats.Skipped++
			logger.Debug("range target equals origin", logger.String("range", r.String()))
			continue
		}

		coords := generate(origin, target, r.Len(), cfg, &stats)

		for idx := r.Start; idx <= r.End; idx++ {
			i, ok := pos[idx]
			if !ok {
				continue
			}
			p := &pairings[i]
			if p.Origin.Kind != track.Original || p.Predicted() {
				continue
			}
			offset := idx - r.Start
			p.Sample.Location = coords[offset]
			p.PredictedOffset = &offset
			stats.Rewritten++
		}
	}

	return stats, nil
}

func generate(origin, target geo.Coordinate, count int, cfg Config, stats *Stats) []geo.Coordinate {
	if cfg.Method == Path {
		if coords, ok := SnapToPath(origin, target, count, cfg.ReferencePath); ok {
			return coords
		}
		stats.Fallbacks++
		logger.Warn("reference path has no points between cluster and target, using straight line",
			logger.String("origin", origin.String()),
			logger.String("target", target.String()))
	}
	return Linear(origin, target, count)
}
