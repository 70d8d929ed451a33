package interpolate

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidRange is wrapped by every ValidationError.
var ErrInvalidRange = errors.New("invalid duplicate range")

// ValidationError lists everything wrong with a manual range string.
type ValidationError struct {
	Input    string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidRange, e.Input, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRange
}

// ParseRanges reads comma-separated "start-end" spans of pairing indices.
// Every span must satisfy 0 <= start < end < count and no two spans may
// share an index. All problems are reported together.
func ParseRanges(raw string, count int) ([]Range, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, &ValidationError{Input: raw, Problems: []string{"no ranges given"}}
	}

	var problems []string
	var ranges []Range

	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		r, err := parseRange(part)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}

		ok := true
		if r.Start < 0 || r.Start >= count {
			problems = append(problems, fmt.Sprintf("%s: start %d out of range [0, %d)", part, r.Start, count))
			ok = false
		}
		if r.End < 0 || r.End >= count {
			problems = append(problems, fmt.Sprintf("%s: end %d out of range [0, %d)", part, r.End, count))
			ok = false
		}
		if r.Start == r.End {
			problems = append(problems, fmt.Sprintf("%s: start equals end", part))
			ok = false
		} else if r.Start > r.End {
			problems = append(problems, fmt.Sprintf("%s: start is after end", part))
			ok = false
		}
		if ok {
			ranges = append(ranges, r)
		}
	}

	problems = append(problems, overlaps(ranges)...)

	if len(problems) > 0 {
		return nil, &ValidationError{Input: raw, Problems: problems}
	}
	return ranges, nil
}

func parseRange(part string) (Range, error) {
	if part == "" {
		return Range{}, errors.New("empty range")
	}
	startStr, endStr, found := strings.Cut(part, "-")
	if !found {
		return Range{}, fmt.Errorf("%s: expected start-end", part)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return Range{}, fmt.Errorf("%s: bad start %q", part, startStr)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return Range{}, fmt.Errorf("%s: bad end %q", part, endStr)
	}
	return Range{Start: start, End: end}, nil
}

func overlaps(ranges []Range) []string {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var problems []string
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start <= sorted[i-1].End {
			problems = append(problems, fmt.Sprintf("%s overlaps %s", sorted[i-1], sorted[i]))
		}
	}
	return problems
}
