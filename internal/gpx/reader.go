package gpx

import (
	"errors"
	"fmt"
	"io"
	"os"

	gogpx "github.com/tkrajina/gpxgo/gpx"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// ErrNoTracks is returned when a GPX document has no timed track points at all.
var ErrNoTracks = errors.New("gpx contains no timed track points")

// ParseTracks reads a GPX file into one original track per <trk>.
func ParseTracks(filename string) ([]track.Track, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadTracks(file)
}

// ReadTracks parses GPX from r. Segments of a track are flattened, points
// without a timestamp are dropped and the rest sorted by time. Tracks left
// with no points are skipped; unnamed tracks are called "Track N".
func ReadTracks(r io.Reader) ([]track.Track, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}

	var tracks []track.Track
	untimed := 0

	for i, trk := range doc.Tracks {
		var points []track.Sample
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				if pt.Timestamp.IsZero() {
					untimed++
					continue
				}
				points = append(points, track.Sample{
					Location: geo.Coordinate{Lat: pt.Latitude, Lon: pt.Longitude},
					Time:     pt.Timestamp.UTC(),
				})
			}
		}
		if len(points) == 0 {
			logger.Warn("skipping gpx track without timed points", logger.Int("track", i))
			continue
		}

		track.SortByTime(points)
		for j := range points {
			points[j].Index = j
		}

		name := trk.Name
		if name == "" {
			name = fmt.Sprintf("Track %d", i+1)
		}

		tracks = append(tracks, track.Track{
			Identity: track.Identity{Index: len(tracks), Name: name, Kind: track.Original},
			Points:   points,
		})
	}

	if untimed > 0 {
		logger.Warn("dropped untimed gpx points", logger.Int("count", untimed))
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	return tracks, nil
}

// ParsePath reads every coordinate of a GPX file as a reference path.
func ParsePath(filename string) ([]geo.Coordinate, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadPath(file)
}

// ReadPath returns track points, then route points, then waypoints, each in
// document order. Timestamps are not required.
func ReadPath(r io.Reader) ([]geo.Coordinate, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}

	var path []geo.Coordinate
	add := func(pt gogpx.GPXPoint) {
		path = append(path, geo.Coordinate{Lat: pt.Latitude, Lon: pt.Longitude})
	}

	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				add(pt)
			}
		}
	}
	for _, rte := range doc.Routes {
		for _, pt := range rte.Points {
			add(pt)
		}
	}
	for _, wpt := range doc.Waypoints {
		add(wpt)
	}

	if len(path) == 0 {
		return nil, errors.New("gpx contains no coordinates")
	}
	return path, nil
}

func decode(r io.Reader) (*gogpx.GPX, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GPX: %w", err)
	}
	doc, err := gogpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}
	return doc, nil
}
