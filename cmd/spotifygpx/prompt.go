package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/interpolate"
)

const maxPromptAttempts = 5

// rangePrompt asks for manual duplicate ranges until they validate.
type rangePrompt struct {
	in       *bufio.Scanner
	out      io.Writer
	attempts int
}

func newRangePrompt(in io.Reader, out io.Writer) *rangePrompt {
	return &rangePrompt{in: bufio.NewScanner(in), out: out}
}

// ask reports what was wrong with the last input, lists the detected
// clusters as a hint and reads one line of new ranges.
func (p *rangePrompt) ask(last *interpolate.ValidationError, clusters []interpolate.Cluster) (string, error) {
	p.attempts++
	if p.attempts > maxPromptAttempts {
		return "", fmt.Errorf("giving up after %d attempts: %w", maxPromptAttempts, last)
	}

	if strings.TrimSpace(last.Input) != "" {
		fmt.Fprintf(p.out, "❌ Ranges %q rejected:\n", last.Input)
		for _, problem := range last.Problems {
			fmt.Fprintf(p.out, "   • %s\n", problem)
		}
	}

	if len(clusters) > 0 {
		fmt.Fprintf(p.out, "Duplicate clusters found:\n")
		for _, c := range clusters {
			fmt.Fprintf(p.out, "   %s at %s (%d pairings)\n", c.Range(), c.Location, len(c.Indices))
		}
	}
	fmt.Fprintf(p.out, "Enter ranges (start-end, comma separated): ")

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read ranges: %w", err)
		}
		return "", fmt.Errorf("no ranges entered: %w", last)
	}
	return strings.TrimSpace(p.in.Text()), nil
}
