package correlate

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// ErrEmptyTrack means a track without samples was handed to the engine.
var ErrEmptyTrack = errors.New("track has no samples")

// Correlate pairs every record with the nearest-in-time sample of each
// selected track whose time window contains it.
//
// Records are processed in order. For each record the candidate tracks are
// searched concurrently and joined before the next record starts; results
// are then appended in candidate order, so pairing indices depend only on
// the input order.
func Correlate(records []playback.Record, tracks []track.Track, cfg Config) ([]Pairing, Stats, error) {
	startTime := time.Now()
	stats := Stats{Records: len(records), Tracks: len(tracks)}

	if len(tracks) == 0 {
		return nil, stats, errors.New("no tracks selected")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultConfig().Workers
	}

	prepared, err := prepareTracks(tracks)
	if err != nil {
		return nil, stats, err
	}

	pairings := make([]Pairing, 0, len(records))

	for _, record := range records {
		candidates := candidateTracks(record, prepared)
		if len(candidates) == 0 {
			stats.Unmatched = append(stats.Unmatched, record)
			logger.Debug("record overlaps no selected track",
				logger.String("record", record.String()),
				logger.Time("at", record.CanonicalTime()))
			continue
		}

		results, rejected, err := matchCandidates(record, candidates, cfg.MaxAccuracy, workers)
		if err != nil {
			return nil, stats, err
		}
		stats.Rejected += rejected

		for _, p := range results {
			if p == nil {
				continue
			}
			p.Index = len(pairings)
			pairings = append(pairings, *p)
		}
	}

	stats.Pairings = len(pairings)
	stats.Duration = time.Since(startTime)

	logger.Info("correlation finished",
		logger.Int("records", stats.Records),
		logger.Int("tracks", stats.Tracks),
		logger.Int("pairings", stats.Pairings),
		logger.Int("unmatched", len(stats.Unmatched)),
		logger.Int("rejected", stats.Rejected),
		logger.Duration("elapsed", stats.Duration))

	return pairings, stats, nil
}

// matchCandidates runs one task per candidate track. Each task writes only
// its own slot, so the slice needs no lock.
func matchCandidates(record playback.Record, candidates []track.Track, maxAccuracy time.Duration, workers int) ([]*Pairing, int, error) {
	at := record.CanonicalTime()
	results := make([]*Pairing, len(candidates))
	rejected := make([]bool, len(candidates))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, t := range candidates {
		g.Go(func() error {
			sample, err := Nearest(t.Points, at)
			if err != nil {
				return fmt.Errorf("%s: %w", t.Identity, err)
			}

			p := Pairing{Record: record, Sample: sample, Origin: t.Identity}
			if maxAccuracy > 0 && p.AbsAccuracy() > maxAccuracy {
				rejected[i] = true
				logger.Warn("pairing exceeds accuracy ceiling",
					logger.String("record", record.String()),
					logger.String("track", t.Identity.Name),
					logger.Duration("accuracy", p.Accuracy()),
					logger.Duration("max", maxAccuracy))
				return nil
			}

			results[i] = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	count := 0
	for _, r := range rejected {
		if r {
			count++
		}
	}
	return results, count, nil
}

// Nearest returns the sample closest in time to at. points must be sorted
// ascending by time. Ties go to the earlier sample.
func Nearest(points []track.Sample, at time.Time) (track.Sample, error) {
	if len(points) == 0 {
		return track.Sample{}, ErrEmptyTrack
	}

	idx := sort.Search(len(points), func(i int) bool {
		return !points[i].Time.Before(at)
	})

	switch idx {
	case 0:
		return points[0], nil
	case len(points):
		return points[len(points)-1], nil
	}

	prev := points[idx-1]
	next := points[idx]
	if at.Sub(prev.Time) <= next.Time.Sub(at) {
		return prev, nil
	}
	return next, nil
}

// window caches a track's time bounds for candidate filtering.
type window struct {
	track      track.Track
	start, end time.Time
}

func candidateTracks(record playback.Record, windows []window) []track.Track {
	var out []track.Track
	for _, w := range windows {
		if record.WithinTimeFrame(w.start, w.end) {
			out = append(out, w.track)
		}
	}
	return out
}

// prepareTracks rejects empty tracks and returns sorted copies of any track
// whose points are out of order. Caller slices are never reordered.
func prepareTracks(tracks []track.Track) ([]window, error) {
	out := make([]window, len(tracks))
	for i, t := range tracks {
		if len(t.Points) == 0 {
			return nil, fmt.Errorf("%s: %w", t.Identity, ErrEmptyTrack)
		}
		if !t.Sorted() {
			points := make([]track.Sample, len(t.Points))
			copy(points, t.Points)
			track.SortByTime(points)
			t.Points = points
		}
		out[i] = window{track: t, start: t.Points[0].Time, end: t.Points[len(t.Points)-1].Time}
	}
	return out, nil
}
