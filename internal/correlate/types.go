package correlate

import (
	"fmt"
	"runtime"
	"time"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// Config controls how records are matched to samples.
type Config struct {
	// MaxAccuracy rejects pairings whose sample is further than this from
	// the record's canonical time. Zero disables the ceiling.
	MaxAccuracy time.Duration

	// Workers bounds the per-record fan-out over candidate tracks.
	// Zero means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the configuration used by the CLI when nothing is set.
func DefaultConfig() Config {
	return Config{
		MaxAccuracy: 0,
		Workers:     runtime.NumCPU(),
	}
}

// Stats reports what happened during correlation so callers can surface it.
type Stats struct {
	Records  int
	Tracks   int
	Pairings int
	// Unmatched holds records that overlapped no selected track.
	Unmatched []playback.Record
	// Rejected counts candidates dropped by the accuracy ceiling.
	Rejected int
	Duration time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("records=%d tracks=%d pairings=%d unmatched=%d rejected=%d elapsed=%v",
		s.Records, s.Tracks, s.Pairings, len(s.Unmatched), s.Rejected, s.Duration)
}

// Pairing ties a playback record to the GPS sample closest to it in time.
type Pairing struct {
	Index  int
	Record playback.Record
	Sample track.Sample
	Origin track.Identity

	// PredictedOffset is set once interpolation has moved Sample.Location;
	// it is the pairing's position inside its duplicate cluster.
	PredictedOffset *int
}

// Accuracy is the signed distance in time between the record and its sample.
// Positive means the sample was taken before the record's canonical time.
func (p Pairing) Accuracy() time.Duration {
	return p.Record.CanonicalTime().Sub(p.Sample.Time)
}

// AbsAccuracy is |Accuracy|.
func (p Pairing) AbsAccuracy() time.Duration {
	if a := p.Accuracy(); a < 0 {
		return -a
	}
	return p.Accuracy()
}

func (p Pairing) AccuracySeconds() float64 {
	return p.Accuracy().Seconds()
}

func (p Pairing) AbsAccuracySeconds() float64 {
	return p.AbsAccuracy().Seconds()
}

// Predicted reports whether interpolation rewrote the location.
func (p Pairing) Predicted() bool {
	return p.PredictedOffset != nil
}

// Description is a one-line human summary used by the exporters.
func (p Pairing) Description() string {
	desc := fmt.Sprintf("#%d %s at %s, %s from %s (%s)",
		p.Index,
		p.Record,
		p.Sample.Location,
		p.Accuracy().Round(time.Second),
		p.Sample.Time.Format(time.RFC3339),
		p.Origin.Name,
	)
	if p.PredictedOffset != nil {
		desc += fmt.Sprintf(", predicted step %d", *p.PredictedOffset)
	}
	return desc
}
