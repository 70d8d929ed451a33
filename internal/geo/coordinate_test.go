package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := Coordinate{Lat: 10, Lon: 20}
	b := Coordinate{Lat: 11, Lon: 21.5}

	assert.Equal(t, Coordinate{Lat: 21, Lon: 41.5}, a.Add(b))
	assert.Equal(t, Coordinate{Lat: 1, Lon: 1.5}, b.Sub(a))
	assert.Equal(t, Coordinate{Lat: 5, Lon: 10}, a.Scale(0.5))
}

func TestFlatDistance(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 3, Lon: 4}

	assert.InDelta(t, 5.0, a.FlatDistance(b), 1e-12)
	assert.InDelta(t, 5.0, b.FlatDistance(a), 1e-12)
	assert.Zero(t, a.FlatDistance(a))
}

func TestHaversineMeters(t *testing.T) {
	a := Coordinate{Lat: 46.0, Lon: 7.0}
	b := Coordinate{Lat: 46.1, Lon: 7.0}

	// 0.1 degree of latitude is roughly 11.1 km
	dist := a.HaversineMeters(b)
	if math.Abs(dist-11100) > 500 {
		t.Errorf("Haversine distance incorrect: got %.0fm, expected ~11100m", dist)
	}
	assert.Zero(t, a.HaversineMeters(a))
}

func TestBearing(t *testing.T) {
	origin := Coordinate{Lat: 0, Lon: 0}

	assert.InDelta(t, 0.0, origin.Bearing(Coordinate{Lat: 1, Lon: 0}), 1e-9)
	assert.InDelta(t, 90.0, origin.Bearing(Coordinate{Lat: 0, Lon: 1}), 1e-9)
	assert.InDelta(t, 180.0, origin.Bearing(Coordinate{Lat: -1, Lon: 0}), 1e-9)
	assert.InDelta(t, 270.0, origin.Bearing(Coordinate{Lat: 0, Lon: -1}), 1e-9)
}

func TestNearest(t *testing.T) {
	path := []Coordinate{{0, 0}, {1, 1}, {2, 2}, {1, 1}}

	assert.Equal(t, 1, Nearest(path, Coordinate{Lat: 1.1, Lon: 0.9}))
	assert.Equal(t, 2, Nearest(path, Coordinate{Lat: 5, Lon: 5}))
	assert.Equal(t, -1, Nearest(nil, Coordinate{}))
}
