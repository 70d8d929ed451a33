package gpx

import (
	"fmt"
	"io"
	"os"

	gogpx "github.com/tkrajina/gpxgo/gpx"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
)

// DefaultCreator is written into the gpx creator attribute.
const DefaultCreator = "SpotifyGPX"

// Metadata describes the run that produced an export.
type Metadata struct {
	Name        string
	Description string
	Creator     string
	// RunID ends up in the document keywords so exports can be traced back to logs.
	RunID string
}

// WriteWaypoints saves one waypoint per pairing to filename.
func WriteWaypoints(filename string, pairings []correlate.Pairing, meta Metadata) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return EncodeWaypoints(file, pairings, meta)
}

// EncodeWaypoints writes a GPX 1.1 document to w. Each waypoint sits at the
// pairing's (possibly interpolated) location and carries the sample time,
// the record as its name and the pairing description.
func EncodeWaypoints(w io.Writer, pairings []correlate.Pairing, meta Metadata) error {
	doc := Waypoints(pairings, meta)

	data, err := doc.ToXml(gogpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return nil
}

// Waypoints builds the in-memory document EncodeWaypoints serializes.
func Waypoints(pairings []correlate.Pairing, meta Metadata) *gogpx.GPX {
	creator := meta.Creator
	if creator == "" {
		creator = DefaultCreator
	}

	doc := &gogpx.GPX{
		Version:     "1.1",
		Creator:     creator,
		Name:        meta.Name,
		Description: meta.Description,
		Keywords:    meta.RunID,
	}

	for _, p := range pairings {
		wpt := gogpx.GPXPoint{
			Point: gogpx.Point{
				Latitude:  p.Sample.Location.Lat,
				Longitude: p.Sample.Location.Lon,
			},
			Timestamp:   p.Sample.Time,
			Name:        p.Record.String(),
			Comment:     fmt.Sprintf("accuracy %.0fs", p.AccuracySeconds()),
			Description: p.Description(),
			Type:        p.Origin.Kind.String(),
		}
		if p.Predicted() {
			wpt.Symbol = "predicted"
		}
		doc.Waypoints = append(doc.Waypoints, wpt)
	}

	return doc
}
