package track

import (
	"fmt"
	"strings"
)

// Selection decides which assembled tracks are handed to the correlation engine.
type Selection int

const (
	SelectOriginals Selection = iota
	SelectOriginalsAndGaps
	SelectGaps
	SelectCombined
	SelectAll
)

var selectionNames = map[Selection]string{
	SelectOriginals:        "originals",
	SelectOriginalsAndGaps: "originals+gaps",
	SelectGaps:             "gaps",
	SelectCombined:         "combined",
	SelectAll:              "all",
}

func (s Selection) String() string {
	if name, ok := selectionNames[s]; ok {
		return name
	}
	return fmt.Sprintf("selection(%d)", int(s))
}

// ParseSelection accepts the names printed by Selection.String, case-insensitively.
func ParseSelection(s string) (Selection, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for sel, name := range selectionNames {
		if name == want {
			return sel, nil
		}
	}
	return 0, fmt.Errorf("unknown track selection %q", s)
}

// Select returns the tracks matching sel, preserving order.
func Select(all []Track, sel Selection) []Track {
	var out []Track
	for _, t := range all {
		if sel.includes(t.Identity.Kind) {
			out = append(out, t)
		}
	}
	return out
}

func (s Selection) includes(k Kind) bool {
	switch s {
	case SelectOriginals:
		return k == Original
	case SelectOriginalsAndGaps:
		return k == Original || k == Gap
	case SelectGaps:
		return k == Gap
	case SelectCombined:
		return k == Combined
	case SelectAll:
		return true
	default:
		return false
	}
}
