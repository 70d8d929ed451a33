package geo

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// Coordinate is a latitude/longitude pair in decimal degrees.
// Two coordinates are equal only when both fields match exactly.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Add returns the component-wise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat + o.Lat, Lon: c.Lon + o.Lon}
}

// Sub returns the component-wise difference c - o.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat - o.Lat, Lon: c.Lon - o.Lon}
}

// Scale multiplies both components by f.
func (c Coordinate) Scale(f float64) Coordinate {
	return Coordinate{Lat: c.Lat * f, Lon: c.Lon * f}
}

// FlatDistance is the euclidean distance in raw degree space.
// Only meaningful for comparing nearby points.
func (c Coordinate) FlatDistance(o Coordinate) float64 {
	dLat := o.Lat - c.Lat
	dLon := o.Lon - c.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// HaversineMeters returns the great-circle distance between c and o in meters.
func (c Coordinate) HaversineMeters(o Coordinate) float64 {
	if c == o {
		return 0
	}

	lat1 := c.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := (o.Lat - c.Lat) * math.Pi / 180
	dLon := (o.Lon - c.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing calculates the initial bearing from c to o in degrees, normalized to [0, 360).
func (c Coordinate) Bearing(o Coordinate) float64 {
	phi1 := c.Lat * math.Pi / 180
	phi2 := o.Lat * math.Pi / 180
	dLambda := (o.Lon - c.Lon) * math.Pi / 180

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	return math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// Nearest returns the position in path of the coordinate closest to c by flat distance.
// Ties keep the earliest position. Returns -1 for an empty path.
func Nearest(path []Coordinate, c Coordinate) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, p := range path {
		if d := c.FlatDistance(p); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
