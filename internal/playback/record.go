package playback

import (
	"fmt"
	"strings"
	"time"
)

// Record is everything the correlation engine needs to know about a playback.
type Record interface {
	// CanonicalTime is the instant matched against GPS samples.
	CanonicalTime() time.Time
	// WithinTimeFrame reports whether the record falls inside [start, end].
	WithinTimeFrame(start, end time.Time) bool
	String() string
}

// TimeUsage picks which end of a playback becomes its canonical time.
type TimeUsage int

const (
	// UseEnd matches on the moment playback stopped, which is what the
	// streaming history records exactly.
	UseEnd TimeUsage = iota
	// UseStart matches on the estimated start (end minus time played).
	UseStart
)

func (u TimeUsage) String() string {
	if u == UseStart {
		return "start"
	}
	return "end"
}

// ParseTimeUsage accepts "start" or "end".
func ParseTimeUsage(s string) (TimeUsage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "end", "":
		return UseEnd, nil
	case "start":
		return UseStart, nil
	default:
		return UseEnd, fmt.Errorf("unknown time usage %q (want start or end)", s)
	}
}

// Entry is one row of a Spotify streaming history export.
type Entry struct {
	Index  int
	Track  string
	Artist string
	Album  string
	URI    string
	// End is when playback stopped.
	End    time.Time
	Played time.Duration
	Usage  TimeUsage
}

// Start is the estimated moment playback began.
func (e Entry) Start() time.Time {
	return e.End.Add(-e.Played)
}

func (e Entry) CanonicalTime() time.Time {
	if e.Usage == UseStart {
		return e.Start()
	}
	return e.End
}

func (e Entry) WithinTimeFrame(start, end time.Time) bool {
	t := e.CanonicalTime()
	return !t.Before(start) && !t.After(end)
}

func (e Entry) String() string {
	switch {
	case e.Artist != "" && e.Track != "":
		return e.Artist + " - " + e.Track
	case e.Track != "":
		return e.Track
	case e.URI != "":
		return e.URI
	default:
		return fmt.Sprintf("entry #%d", e.Index)
	}
}

// Filter keeps the records whose canonical time lies in [start, end].
func Filter(records []Record, start, end time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.WithinTimeFrame(start, end) {
			out = append(out, r)
		}
	}
	return out
}
