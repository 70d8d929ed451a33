package correlate

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

var base = time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)

func rec(name string, offset time.Duration) playback.Entry {
	return playback.Entry{Track: name, End: base.Add(offset), Usage: playback.UseEnd}
}

func records(entries ...playback.Entry) []playback.Record {
	return playback.Records(entries)
}

func sample(idx int, lat, lon float64, offset time.Duration) track.Sample {
	return track.Sample{Index: idx, Location: geo.Coordinate{Lat: lat, Lon: lon}, Time: base.Add(offset)}
}

func scenarioTrack() track.Track {
	return track.Track{
		Identity: track.Identity{Index: 0, Name: "T0", Kind: track.Original},
		Points: []track.Sample{
			sample(0, 10, 20, 0),
			sample(1, 10, 20, 300*time.Second),
			sample(2, 11, 21, 600*time.Second),
		},
	}
}

func TestCorrelateScenario(t *testing.T) {
	tr := scenarioTrack()
	a := rec("A", 60*time.Second)
	b := rec("B", 120*time.Second)
	c := rec("C", 700*time.Second)

	pairings, stats, err := Correlate(records(a, b, c), []track.Track{tr}, Config{Workers: 2})
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	assert.Equal(t, 0, pairings[0].Index)
	assert.Equal(t, "A", pairings[0].Record.String())
	assert.Equal(t, tr.Points[0], pairings[0].Sample)
	assert.Equal(t, 60*time.Second, pairings[0].Accuracy())

	assert.Equal(t, 1, pairings[1].Index)
	assert.Equal(t, "B", pairings[1].Record.String())
	assert.Equal(t, tr.Points[0], pairings[1].Sample)
	assert.Equal(t, 120.0, pairings[1].AccuracySeconds())

	assert.Equal(t, pairings[0].Sample.Location, pairings[1].Sample.Location)
	for _, p := range pairings {
		assert.Equal(t, tr.Identity, p.Origin)
		assert.Nil(t, p.PredictedOffset)
	}

	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 2, stats.Pairings)
	require.Len(t, stats.Unmatched, 1)
	assert.Equal(t, "C", stats.Unmatched[0].String())
}

func TestNearestEdges(t *testing.T) {
	points := scenarioTrack().Points

	cases := []struct {
		name   string
		at     time.Duration
		wantAt time.Duration
	}{
		{"before first", -time.Hour, 0},
		{"exact first", 0, 0},
		{"closer to previous", 100 * time.Second, 0},
		{"tie goes to earlier", 150 * time.Second, 0},
		{"closer to next", 200 * time.Second, 300 * time.Second},
		{"exact middle", 300 * time.Second, 300 * time.Second},
		{"after last", time.Hour, 600 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Nearest(points, base.Add(tc.at))
			require.NoError(t, err)
			assert.Equal(t, base.Add(tc.wantAt), got.Time)
		})
	}

	_, err := Nearest(nil, base)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 50; round++ {
		n := 1 + rng.IntN(40)
		points := make([]track.Sample, n)
		offset := time.Duration(0)
		for i := range points {
			offset += time.Duration(1+rng.IntN(120)) * time.Second
			points[i] = sample(i, float64(i), float64(i), offset)
		}

		at := base.Add(time.Duration(rng.IntN(int(offset/time.Second)+240)-120) * time.Second)
		got, err := Nearest(points, at)
		require.NoError(t, err)

		best := absDuration(points[0].Time.Sub(at))
		for _, p := range points {
			if d := absDuration(p.Time.Sub(at)); d < best {
				best = d
			}
		}
		assert.Equal(t, best, absDuration(got.Time.Sub(at)), "round %d", round)
	}
}

func TestCorrelatePairsIffWithinTimeFrame(t *testing.T) {
	tracks := []track.Track{
		{
			Identity: track.Identity{Index: 0, Name: "early", Kind: track.Original},
			Points:   []track.Sample{sample(0, 1, 1, 0), sample(1, 1, 2, 10*time.Minute)},
		},
		{
			Identity: track.Identity{Index: 1, Name: "late", Kind: track.Original},
			Points:   []track.Sample{sample(0, 2, 1, 5*time.Minute), sample(1, 2, 2, 20*time.Minute)},
		},
	}
	var entries []playback.Entry
	for m := -2; m <= 22; m++ {
		entries = append(entries, rec("r", time.Duration(m)*time.Minute))
	}
	recs := records(entries...)

	pairings, _, err := Correlate(recs, tracks, DefaultConfig())
	require.NoError(t, err)

	type key struct {
		at     time.Time
		origin track.Identity
	}
	got := make(map[key]int)
	for _, p := range pairings {
		got[key{p.Record.CanonicalTime(), p.Origin}]++
	}

	for _, r := range recs {
		for _, tr := range tracks {
			want := 0
			if r.WithinTimeFrame(tr.Start(), tr.End()) {
				want = 1
			}
			assert.Equal(t, want, got[key{r.CanonicalTime(), tr.Identity}],
				"record at %v, track %s", r.CanonicalTime(), tr.Identity.Name)
		}
	}
}

func TestCorrelateIndicesAreUniqueAndDeterministic(t *testing.T) {
	originals := []track.Track{
		{
			Identity: track.Identity{Index: 0, Name: "a", Kind: track.Original},
			Points:   []track.Sample{sample(0, 1, 1, 0), sample(1, 1, 2, 10*time.Minute)},
		},
		{
			Identity: track.Identity{Index: 1, Name: "b", Kind: track.Original},
			Points:   []track.Sample{sample(0, 2, 1, 15*time.Minute), sample(1, 2, 2, 30*time.Minute)},
		},
	}
	all, err := track.Assemble(originals)
	require.NoError(t, err)

	var entries []playback.Entry
	for m := 0; m <= 30; m += 3 {
		entries = append(entries, rec("r", time.Duration(m)*time.Minute))
	}

	first, _, err := Correlate(records(entries...), all, Config{Workers: 4})
	require.NoError(t, err)

	seen := make(map[int]bool)
	for i, p := range first {
		assert.Equal(t, i, p.Index)
		assert.False(t, seen[p.Index], "duplicate index %d", p.Index)
		seen[p.Index] = true
		assert.Equal(t, p.AbsAccuracy(), absDuration(p.Accuracy()))
	}

	for run := 0; run < 5; run++ {
		again, _, err := Correlate(records(entries...), all, Config{Workers: 4})
		require.NoError(t, err)
		if diff := cmp.Diff(origins(first), origins(again)); diff != "" {
			t.Fatalf("run %d produced a different order (-first +again):\n%s", run, diff)
		}
	}
}

func TestCorrelateKeepsMultiplicity(t *testing.T) {
	tr := scenarioTrack()
	all, err := track.Assemble([]track.Track{tr})
	require.NoError(t, err)

	pairings, _, err := Correlate(records(rec("A", time.Minute)), all, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	assert.Equal(t, track.Original, pairings[0].Origin.Kind)
	assert.Equal(t, track.Combined, pairings[1].Origin.Kind)
}

func TestCorrelateAccuracyCeiling(t *testing.T) {
	tr := scenarioTrack()

	pairings, stats, err := Correlate(
		records(rec("close", 10*time.Second), rec("far", 140*time.Second)),
		[]track.Track{tr},
		Config{MaxAccuracy: time.Minute},
	)
	require.NoError(t, err)
	require.Len(t, pairings, 1)
	assert.Equal(t, "close", pairings[0].Record.String())
	assert.Equal(t, 0, pairings[0].Index)
	assert.Equal(t, 1, stats.Rejected)
	assert.Empty(t, stats.Unmatched)
}

func TestCorrelateEmptyTrackIsFatal(t *testing.T) {
	tracks := []track.Track{scenarioTrack(), {Identity: track.Identity{Name: "empty"}}}

	_, _, err := Correlate(records(rec("A", time.Minute)), tracks, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyTrack))

	_, _, err = Correlate(records(rec("A", time.Minute)), nil, DefaultConfig())
	assert.Error(t, err)
}

func TestCorrelateSortsDefensively(t *testing.T) {
	tr := scenarioTrack()
	shuffled := track.Track{
		Identity: tr.Identity,
		Points:   []track.Sample{tr.Points[2], tr.Points[0], tr.Points[1]},
	}

	pairings, _, err := Correlate(records(rec("A", 590*time.Second)), []track.Track{shuffled}, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, pairings, 1)
	assert.Equal(t, tr.Points[2], pairings[0].Sample)

	// the caller's slice keeps its order
	assert.Equal(t, tr.Points[2], shuffled.Points[0])
}

func TestGroupByOriginAndKind(t *testing.T) {
	all, err := track.Assemble([]track.Track{scenarioTrack()})
	require.NoError(t, err)

	pairings, _, err := Correlate(records(rec("A", time.Minute), rec("B", 2*time.Minute)), all, DefaultConfig())
	require.NoError(t, err)

	byOrigin := GroupByOrigin(pairings)
	require.Len(t, byOrigin, 2)
	assert.Equal(t, "T0", byOrigin[0].Key.Name)
	assert.Len(t, byOrigin[0].Pairings, 2)
	assert.Equal(t, track.CombinedName, byOrigin[1].Key.Name)

	byKind := GroupByKind(pairings)
	require.Len(t, byKind, 2)
	assert.Equal(t, track.Original, byKind[0].Key)
	assert.Equal(t, track.Combined, byKind[1].Key)
}

func TestPairingDescription(t *testing.T) {
	tr := scenarioTrack()
	p := Pairing{Index: 3, Record: rec("A", time.Minute), Sample: tr.Points[0], Origin: tr.Identity}

	assert.Contains(t, p.Description(), "#3 A")
	assert.Contains(t, p.Description(), "1m0s")
	assert.NotContains(t, p.Description(), "predicted")
	assert.False(t, p.Predicted())

	offset := 1
	p.PredictedOffset = &offset
	assert.Contains(t, p.Description(), "predicted step 1")
	assert.True(t, p.Predicted())
}

func origins(pairings []Pairing) []string {
	out := make([]string, len(pairings))
	for i, p := range pairings {
		out[i] = p.Origin.Name + "@" + p.Record.CanonicalTime().Format(time.RFC3339)
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
