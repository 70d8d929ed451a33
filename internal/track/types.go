package track

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
)

// ErrNoPoints is returned when a track without samples reaches a step that needs them.
var ErrNoPoints = errors.New("track has no points")

// Kind tells how a track came to exist.
type Kind int

const (
	// Original tracks come straight from a GPS input file.
	Original Kind = iota
	// Gap tracks span the hole between two consecutive originals.
	Gap
	// Combined holds every sample of every original.
	Combined
)

func (k Kind) String() string {
	switch k {
	case Original:
		return "original"
	case Gap:
		return "gap"
	case Combined:
		return "combined"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Identity is the grouping key for anything derived from a track.
type Identity struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
}

func (id Identity) String() string {
	return fmt.Sprintf("%s #%d %q", id.Kind, id.Index, id.Name)
}

// Sample is a single timestamped GPS fix.
type Sample struct {
	Index    int
	Location geo.Coordinate
	Time     time.Time
}

// Track is a run of samples sharing an identity.
type Track struct {
	Identity Identity
	Points   []Sample
}

// Start returns the earliest sample time, or the zero time for an empty track.
func (t Track) Start() time.Time {
	start, _ := timeBounds(t.Points)
	return start
}

// End returns the latest sample time, or the zero time for an empty track.
func (t Track) End() time.Time {
	_, end := timeBounds(t.Points)
	return end
}

// Duration is End - Start.
func (t Track) Duration() time.Duration {
	start, end := timeBounds(t.Points)
	return end.Sub(start)
}

// DistanceMeters sums the great-circle legs between consecutive points.
func (t Track) DistanceMeters() float64 {
	total := 0.0
	for i := 1; i < len(t.Points); i++ {
		total += t.Points[i-1].Location.HaversineMeters(t.Points[i].Location)
	}
	return total
}

// Sorted reports whether the points are in ascending time order.
func (t Track) Sorted() bool {
	return sort.SliceIsSorted(t.Points, func(i, j int) bool {
		return t.Points[i].Time.Before(t.Points[j].Time)
	})
}

// SortByTime orders points ascending by time. Samples with equal times keep their order.
func SortByTime(points []Sample) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
}

func timeBounds(points []Sample) (time.Time, time.Time) {
	var start time.Time
	var end time.Time

	for i, pt := range points {
		if i == 0 || pt.Time.Before(start) {
			start = pt.Time
		}
		if i == 0 || pt.Time.After(end) {
			end = pt.Time
		}
	}

	return start, end
}
