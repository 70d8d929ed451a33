package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
)

var csvHeader = []string{
	"index", "record", "record_time", "sample_time", "lat", "lon",
	"accuracy_s", "origin", "kind", "predicted_offset",
}

// WriteCSV saves pairings as CSV, one row per pairing in index order.
func WriteCSV(filename string, pairings []correlate.Pairing) error {
	return writeFile(filename, func(w io.Writer) error { return EncodeCSV(w, pairings) })
}

// EncodeCSV writes the CSV form of pairings to w.
func EncodeCSV(w io.Writer, pairings []correlate.Pairing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, p := range pairings {
		offset := ""
		if p.Predicted() {
			offset = strconv.Itoa(*p.PredictedOffset)
		}
		row := []string{
			strconv.Itoa(p.Index),
			p.Record.String(),
			p.Record.CanonicalTime().UTC().Format(time.RFC3339),
			p.Sample.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Sample.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Sample.Location.Lon, 'f', -1, 64),
			strconv.FormatFloat(p.AccuracySeconds(), 'f', -1, 64),
			p.Origin.Name,
			p.Origin.Kind.String(),
			offset,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonPairing struct {
	Index           int       `json:"index"`
	Record          string    `json:"record"`
	RecordTime      time.Time `json:"record_time"`
	SampleTime      time.Time `json:"sample_time"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	AccuracySeconds float64   `json:"accuracy_s"`
	Origin          string    `json:"origin"`
	OriginIndex     int       `json:"origin_index"`
	Kind            string    `json:"kind"`
	PredictedOffset *int      `json:"predicted_offset,omitempty"`
}

type jsonReport struct {
	RunID    string        `json:"run_id,omitempty"`
	Summary  Summary       `json:"summary"`
	Pairings []jsonPairing `json:"pairings"`
}

// WriteJSON saves the summary and every pairing as one JSON document.
func WriteJSON(filename, runID string, pairings []correlate.Pairing, summary Summary) error {
	return writeFile(filename, func(w io.Writer) error { return EncodeJSON(w, runID, pairings, summary) })
}

// EncodeJSON writes the JSON report to w.
func EncodeJSON(w io.Writer, runID string, pairings []correlate.Pairing, summary Summary) error {
	doc := jsonReport{
		RunID:    runID,
		Summary:  summary,
		Pairings: make([]jsonPairing, len(pairings)),
	}
	for i, p := range pairings {
		doc.Pairings[i] = jsonPairing{
			Index:           p.Index,
			Record:          p.Record.String(),
			RecordTime:      p.Record.CanonicalTime().UTC(),
			SampleTime:      p.Sample.Time.UTC(),
			Lat:             p.Sample.Location.Lat,
			Lon:             p.Sample.Location.Lon,
			AccuracySeconds: p.AccuracySeconds(),
			Origin:          p.Origin.Name,
			OriginIndex:     p.Origin.Index,
			Kind:            p.Origin.Kind.String(),
			PredictedOffset: p.PredictedOffset,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeFile(filename string, encode func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := encode(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
