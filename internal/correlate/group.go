package correlate

import "github.com/simon-techkid/SpotifyGPX-sub000/internal/track"

// Group is a run of pairings sharing a key, in pairing order.
type Group[K comparable] struct {
	Key      K
	Pairings []Pairing
}

// GroupByOrigin groups pairings by the track they were drawn from, ordered by
// first appearance.
func GroupByOrigin(pairings []Pairing) []Group[track.Identity] {
	return groupBy(pairings, func(p Pairing) track.Identity { return p.Origin })
}

// GroupByKind groups pairings by the kind of their origin track, ordered by
// first appearance.
func GroupByKind(pairings []Pairing) []Group[track.Kind] {
	return groupBy(pairings, func(p Pairing) track.Kind { return p.Origin.Kind })
}

func groupBy[K comparable](pairings []Pairing, key func(Pairing) K) []Group[K] {
	pos := make(map[K]int)
	var groups []Group[K]

	for _, p := range pairings {
		k := key(p)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group[K]{Key: k})
		}
		groups[i].Pairings = append(groups[i].Pairings, p)
	}

	return groups
}
