package interpolate

import (
	"sort"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// MinClusterSize is the smallest group of identical coordinates worth spreading out.
const MinClusterSize = 2

// FindClusters groups pairings drawn from original tracks by exact location.
// Gap and combined pairings repeat coordinates by construction and are
// ignored, as are pairings that were already interpolated. Clusters come
// back ordered by their first index.
func FindClusters(pairings []correlate.Pairing) []Cluster {
	pos := make(map[geo.Coordinate]int)
	var groups []Cluster

	for _, p := range pairings {
		if p.Origin.Kind != track.Original || p.Predicted() {
			continue
		}
		loc := p.Sample.Location
		i, ok := pos[loc]
		if !ok {
			i = len(groups)
			pos[loc] = i
			groups = append(groups, Cluster{Location: loc})
		}
		groups[i].Indices = append(groups[i].Indices, p.Index)
	}

	clusters := groups[:0]
	for _, g := range groups {
		if len(g.Indices) < MinClusterSize {
			continue
		}
		sort.Ints(g.Indices)
		clusters = append(clusters, g)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Indices[0] < clusters[j].Indices[0]
	})

	return clusters
}

// AutoRanges turns each cluster into the span from its first to last member.
func AutoRanges(clusters []Cluster) []Range {
	ranges := make([]Range, len(clusters))
	for i, c := range clusters {
		ranges[i] = c.Range()
	}
	return ranges
}
