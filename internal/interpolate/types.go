package interpolate

import (
	"fmt"
	"strings"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
)

// Mode selects how duplicate ranges are found.
type Mode int

const (
	// Off leaves pairings untouched.
	Off Mode = iota
	// Auto interpolates every detected duplicate cluster.
	Auto
	// Manual interpolates caller-supplied "start-end" ranges.
	Manual
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Manual:
		return "manual"
	default:
		return "off"
	}
}

// ParseMode accepts off, auto or manual.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return Off, nil
	case "auto":
		return Auto, nil
	case "manual":
		return Manual, nil
	default:
		return Off, fmt.Errorf("unknown interpolation mode %q", s)
	}
}

// Method selects how intermediate coordinates are generated.
type Method int

const (
	// Equidistant blends linearly between origin and target.
	Equidistant Method = iota
	// Path samples points of a reference path lying between origin and target.
	Path
)

func (m Method) String() string {
	if m == Path {
		return "path"
	}
	return "equidistant"
}

// ParseMethod accepts equidistant or path.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equidistant", "linear":
		return Equidistant, nil
	case "path":
		return Path, nil
	default:
		return Equidistant, fmt.Errorf("unknown interpolation method %q", s)
	}
}

// Config controls the duplicate-coordinate pass.
type Config struct {
	Mode   Mode
	Method Method
	// Ranges is the raw "start-end,start-end" input used in Manual mode.
	Ranges string
	// ReferencePath is required by the Path method.
	ReferencePath []geo.Coordinate
}

// DefaultConfig interpolates detected clusters in a straight line.
func DefaultConfig() Config {
	return Config{Mode: Auto, Method: Equidistant}
}

// Range is an inclusive span of pairing indices.
type Range struct {
	Start int
	End   int
}

// Len is the number of pairing indices covered.
func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Cluster is a set of pairings that landed on the same coordinate.
type Cluster struct {
	Location geo.Coordinate
	// Indices are pairing indices in ascending order.
	Indices []int
}

// Range spans the first to the last member.
func (c Cluster) Range() Range {
	return Range{Start: c.Indices[0], End: c.Indices[len(c.Indices)-1]}
}

// Stats reports what the pass did.
type Stats struct {
	Clusters  int
	Ranges    int
	Rewritten int
	// Skipped counts ranges that had no distinct target to move towards.
	Skipped int
	// Fallbacks counts path ranges that fell back to a straight line.
	Fallbacks int
}

func (s Stats) String() string {
	return fmt.Sprintf("clusters=%d ranges=%d rewritten=%d skipped=%d fallbacks=%d",
		s.Clusters, s.Ranges, s.Rewritten, s.Skipped, s.Fallbacks)
}
