package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

var base = time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)

var (
	morning  = track.Identity{Index: 0, Name: "Morning", Kind: track.Original}
	gap      = track.Identity{Index: 1, Name: "Morning-Evening", Kind: track.Gap}
	combined = track.Identity{Index: 2, Name: track.CombinedName, Kind: track.Combined}
)

func pairing(index int, accuracy time.Duration, origin track.Identity) correlate.Pairing {
	at := base.Add(time.Duration(index) * time.Hour)
	return correlate.Pairing{
		Index:  index,
		Record: playback.Entry{Index: index, Artist: "Artist", Track: "Song", End: at.Add(accuracy)},
		Sample: track.Sample{Location: geo.Coordinate{Lat: 46 + float64(index)*0.01, Lon: 7}, Time: at},
		Origin: origin,
	}
}

func fixture() []correlate.Pairing {
	offset := 0
	pairings := []correlate.Pairing{
		pairing(0, 10*time.Second, morning),
		pairing(1, -20*time.Second, morning),
		pairing(2, 30*time.Second, gap),
		pairing(3, 40*time.Second, combined),
	}
	pairings[1].PredictedOffset = &offset
	return pairings
}

func TestSummarize(t *testing.T) {
	pairings := fixture()
	stats := correlate.Stats{
		Records:   6,
		Pairings:  4,
		Rejected:  1,
		Unmatched: []playback.Record{playback.Entry{Track: "lost"}},
	}

	s := Summarize(pairings, stats)

	assert.Equal(t, 6, s.Records)
	assert.Equal(t, 4, s.Pairings)
	assert.Equal(t, 1, s.Unmatched)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 1, s.Predicted)

	assert.Equal(t, 25*time.Second, s.Accuracy.Mean)
	assert.Equal(t, 20*time.Second, s.Accuracy.Median)
	assert.Equal(t, 40*time.Second, s.Accuracy.P90)
	assert.Equal(t, 40*time.Second, s.Accuracy.Max)
	assert.InDelta(t, 12.91, s.Accuracy.StdDev.Seconds(), 0.01)

	assert.Equal(t, map[string]int{"original": 2, "gap": 1, "combined": 1}, s.ByKind)

	require.Len(t, s.ByOrigin, 3)
	assert.Equal(t, morning, s.ByOrigin[0].Origin)
	assert.Equal(t, 2, s.ByOrigin[0].Pairings)
	assert.Equal(t, 15*time.Second, s.ByOrigin[0].Accuracy.Mean)
	assert.Equal(t, gap, s.ByOrigin[1].Origin)
	assert.Zero(t, s.ByOrigin[1].Accuracy.StdDev)

	out := s.String()
	assert.Contains(t, out, "pairings: 4")
	assert.Contains(t, out, "Morning")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, correlate.Stats{Records: 3})

	assert.Equal(t, 3, s.Records)
	assert.Zero(t, s.Pairings)
	assert.Equal(t, Accuracy{}, s.Accuracy)
	assert.Empty(t, s.ByOrigin)
}

func TestPlotAccuracy(t *testing.T) {
	out := filepath.Join(t.TempDir(), "accuracy.png")

	require.NoError(t, PlotAccuracy(out, fixture(), 0))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotAccuracy(filepath.Join(t.TempDir(), "empty.png"), nil, 5))
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, fixture()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"0", "Artist - Song", "2025-01-01T07:00:10Z", "2025-01-01T07:00:00Z",
		"46", "7", "10", "Morning", "original", "",
	}, rows[1])
	assert.Equal(t, "-20", rows[2][6])
	assert.Equal(t, "0", rows[2][9])
	assert.Equal(t, "gap", rows[3][8])
}

func TestWriteJSON(t *testing.T) {
	pairings := fixture()
	out := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteJSON(out, "run-1", pairings, Summarize(pairings, correlate.Stats{Records: 4})))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc struct {
		RunID    string `json:"run_id"`
		Summary  struct {
			Pairings int `json:"pairings"`
		} `json:"summary"`
		Pairings []map[string]any `json:"pairings"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, 4, doc.Summary.Pairings)
	require.Len(t, doc.Pairings, 4)

	assert.NotContains(t, doc.Pairings[0], "predicted_offset")
	assert.Equal(t, float64(0), doc.Pairings[1]["predicted_offset"])
	assert.Equal(t, "combined", doc.Pairings[3]["kind"])
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), fixture())
	assert.Error(t, err)
}
