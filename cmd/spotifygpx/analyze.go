package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/interpolate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/report"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <songs.json> <gps.gpx>",
	Short: "Describe both inputs and the pairings they would produce",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := opts.parse()
		if err != nil {
			return err
		}
		s.interp.Mode = interpolate.Off

		in, err := load(args[0], args[1], "", s)
		if err != nil {
			return err
		}
		res, err := correlateInputs(in, s, nil)
		if err != nil {
			return err
		}

		printAnalysis(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	opts.addRunFlags(analyzeCmd.Flags())
	rootCmd.AddCommand(analyzeCmd)
}

func printAnalysis(w io.Writer, res *result) {
	fmt.Fprintf(w, "Songs: %d entries", len(res.entries))
	if len(res.entries) > 0 {
		first := res.entries[0].End
		last := res.entries[len(res.entries)-1].End
		fmt.Fprintf(w, ", %s – %s", first.Format(time.RFC3339), last.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "\n  inside gps span: %d\n", len(res.records))

	fmt.Fprintf(w, "\nTracks:\n")
	for _, t := range res.all {
		printTrackStats(w, t, res.records)
	}

	fmt.Fprintf(w, "\nPairings:\n")
	fmt.Fprint(w, report.Summarize(res.pairings, res.stats))
	for _, r := range res.stats.Unmatched {
		fmt.Fprintf(w, "  unmatched: %s at %s\n", r, r.CanonicalTime().Format(time.RFC3339))
	}

	clusters := interpolate.FindClusters(res.pairings)
	fmt.Fprintf(w, "\nDuplicate clusters: %d\n", len(clusters))
	for _, c := range clusters {
		fmt.Fprintf(w, "  %s at %s (%d pairings)\n", c.Range(), c.Location, len(c.Indices))
	}

	for _, g := range correlate.GroupByOrigin(res.pairings) {
		fmt.Fprintf(w, "\n%s:\n", g.Key)
		for _, p := range g.Pairings {
			fmt.Fprintf(w, "  %s\n", p.Description())
		}
	}
}

func printTrackStats(w io.Writer, t track.Track, records []playback.Record) {
	fmt.Fprintf(w, "  %s\n", t.Identity)
	if len(t.Points) == 0 {
		fmt.Fprintf(w, "    points: 0\n")
		return
	}
	songs := len(playback.Filter(records, t.Start(), t.End()))
	fmt.Fprintf(w, "    points: %d\n", len(t.Points))
	fmt.Fprintf(w, "    time span: %s – %s (duration %v)\n",
		t.Start().Format(time.RFC3339), t.End().Format(time.RFC3339), t.Duration())
	fmt.Fprintf(w, "    distance: %.3f km\n", t.DistanceMeters()/1000)
	fmt.Fprintf(w, "    songs in span: %d\n", songs)
}
