package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// Accuracy holds descriptive statistics of absolute pairing accuracy.
type Accuracy struct {
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"std_dev"`
	Median time.Duration `json:"median"`
	P90    time.Duration `json:"p90"`
	Max    time.Duration `json:"max"`
}

// OriginSummary is the per-track breakdown of a run.
type OriginSummary struct {
	Origin   track.Identity `json:"origin"`
	Pairings int            `json:"pairings"`
	Accuracy Accuracy       `json:"accuracy"`
}

// Summary condenses a correlation run for humans.
type Summary struct {
	Records   int             `json:"records"`
	Pairings  int             `json:"pairings"`
	Unmatched int             `json:"unmatched"`
	Rejected  int             `json:"rejected"`
	Predicted int             `json:"predicted"`
	Accuracy  Accuracy        `json:"accuracy"`
	ByKind    map[string]int  `json:"by_kind"`
	ByOrigin  []OriginSummary `json:"by_origin"`
}

// Summarize computes accuracy statistics overall and per origin track.
func Summarize(pairings []correlate.Pairing, stats correlate.Stats) Summary {
	s := Summary{
		Records:   stats.Records,
		Pairings:  len(pairings),
		Unmatched: len(stats.Unmatched),
		Rejected:  stats.Rejected,
		Accuracy:  accuracyOf(pairings),
		ByKind:    make(map[string]int),
	}

	for _, p := range pairings {
		if p.Predicted() {
			s.Predicted++
		}
	}
	for _, g := range correlate.GroupByKind(pairings) {
		s.ByKind[g.Key.String()] = len(g.Pairings)
	}
	for _, g := range correlate.GroupByOrigin(pairings) {
		s.ByOrigin = append(s.ByOrigin, OriginSummary{
			Origin:   g.Key,
			Pairings: len(g.Pairings),
			Accuracy: accuracyOf(g.Pairings),
		})
	}

	return s
}

func accuracyOf(pairings []correlate.Pairing) Accuracy {
	if len(pairings) == 0 {
		return Accuracy{}
	}

	secs := make([]float64, len(pairings))
	for i, p := range pairings {
		secs[i] = p.AbsAccuracySeconds()
	}
	sort.Float64s(secs)

	a := Accuracy{
		Mean:   seconds(stat.Mean(secs, nil)),
		Median: seconds(stat.Quantile(0.5, stat.Empirical, secs, nil)),
		P90:    seconds(stat.Quantile(0.9, stat.Empirical, secs, nil)),
		Max:    seconds(floats.Max(secs)),
	}
	if len(secs) > 1 {
		a.StdDev = seconds(stat.StdDev(secs, nil))
	}
	return a
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}

func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "records: %d, pairings: %d, unmatched: %d, rejected: %d, predicted: %d\n",
		s.Records, s.Pairings, s.Unmatched, s.Rejected, s.Predicted)
	fmt.Fprintf(&b, "accuracy: mean %v, stddev %v, median %v, p90 %v, max %v\n",
		s.Accuracy.Mean, s.Accuracy.StdDev, s.Accuracy.Median, s.Accuracy.P90, s.Accuracy.Max)

	kinds := make([]string, 0, len(s.ByKind))
	for k := range s.ByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %s: %d\n", k, s.ByKind[k])
	}

	for _, o := range s.ByOrigin {
		fmt.Fprintf(&b, "  %s: %d pairings, mean accuracy %v\n", o.Origin, o.Pairings, o.Accuracy.Mean)
	}

	return b.String()
}
