package track

import (
	"errors"
	"fmt"
)

// GapSeparator joins the names of the two tracks a gap track spans.
const GapSeparator = "-"

// CombinedName is the name given to the combined track.
const CombinedName = "Combined"

// Assemble derives the full set of selectable tracks from the originals.
// The result holds the originals unchanged, then one gap track per
// discontinuity between neighbours, then the combined track.
func Assemble(originals []Track) ([]Track, error) {
	if len(originals) == 0 {
		return nil, errors.New("no original tracks to assemble")
	}

	for _, t := range originals {
		if len(t.Points) == 0 {
			return nil, fmt.Errorf("%s: %w", t.Identity, ErrNoPoints)
		}
	}

	gaps := Gaps(originals)
	all := make([]Track, 0, len(originals)+len(gaps)+1)
	all = append(all, originals...)
	all = append(all, gaps...)
	all = append(all, Combine(originals))

	return all, nil
}

// Gaps builds a two-point track for each adjacent pair of originals whose
// boundary samples differ in time. Originals without points are skipped.
func Gaps(originals []Track) []Track {
	var gaps []Track

	for i := 0; i+1 < len(originals); i++ {
		current := originals[i]
		next := originals[i+1]
		if len(current.Points) == 0 || len(next.Points) == 0 {
			continue
		}

		last := current.Points[len(current.Points)-1]
		first := next.Points[0]
		if last.Time.Equal(first.Time) {
			continue
		}

		gaps = append(gaps, Track{
			Identity: Identity{
				Index: i,
				Name:  current.Identity.Name + GapSeparator + next.Identity.Name,
				Kind:  Gap,
			},
			Points: []Sample{last, first},
		})
	}

	return gaps
}

// Combine merges the samples of every original into one time-sorted track
// indexed after the last original.
func Combine(originals []Track) Track {
	total := 0
	for _, t := range originals {
		total += len(t.Points)
	}

	points := make([]Sample, 0, total)
	for _, t := range originals {
		points = append(points, t.Points...)
	}
	SortByTime(points)

	return Track{
		Identity: Identity{
			Index: len(originals),
			Name:  CombinedName,
			Kind:  Combined,
		},
		Points: points,
	}
}
