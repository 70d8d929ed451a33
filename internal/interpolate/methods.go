package interpolate

import (
	"math"
	"sort"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
)

// Linear returns count coordinates on the straight line from origin towards
// target. The first is origin; target itself is never reached.
func Linear(origin, target geo.Coordinate, count int) []geo.Coordinate {
	if count <= 0 {
		return nil
	}

	step := target.Sub(origin)
	coords := make([]geo.Coordinate, count)
	for i := range coords {
		coords[i] = origin.Add(step.Scale(float64(i) / float64(count)))
	}
	return coords
}

// SnapToPath picks count coordinates from path between the path points
// nearest to origin and target. Path points are taken in order of distance
// from the origin match and the run stops at the target match. Returns
// false when the path has nothing between the two matches.
func SnapToPath(origin, target geo.Coordinate, count int, path []geo.Coordinate) ([]geo.Coordinate, bool) {
	if count <= 0 || len(path) == 0 {
		return nil, false
	}

	from := path[geo.Nearest(path, origin)]
	to := path[geo.Nearest(path, target)]

	ordered := make([]geo.Coordinate, len(path))
	copy(ordered, path)
	sort.SliceStable(ordered, func(i, j int) bool {
		return from.FlatDistance(ordered[i]) < from.FlatDistance(ordered[j])
	})

	var between []geo.Coordinate
	for _, c := range ordered {
		if c == to {
			break
		}
		between = append(between, c)
	}
	if len(between) == 0 {
		return nil, false
	}

	stride := float64(len(between)) / float64(count)
	coords := make([]geo.Coordinate, count)
	for i := range coords {
		coords[i] = between[int(math.Floor(stride*float64(i)))]
	}
	return coords, true
}
