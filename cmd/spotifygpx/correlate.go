package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/gpx"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/report"
)

var correlateCmd = &cobra.Command{
	Use:   "correlate <songs.json> <gps.gpx>",
	Short: "Pair songs with GPS samples and export them as waypoints",
	Example: `  spotifygpx correlate StreamingHistory.json ride.gpx
  spotifygpx correlate --tracks all --csv songs.csv history.json ride.gpx
  spotifygpx correlate --interpolate manual --ranges 4-7 history.json ride.gpx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCorrelate(cmd, args[0], args[1])
	},
}

func init() {
	flags := correlateCmd.Flags()
	opts.addRunFlags(flags)
	flags.StringVarP(&opts.out, "out", "o", "", "Output GPX file (default: <gps>_songs.gpx)")
	flags.StringVar(&opts.csvOut, "csv", "", "Also write pairings as CSV")
	flags.StringVar(&opts.jsonOut, "json", "", "Also write summary and pairings as JSON")
	flags.StringVar(&opts.chart, "chart", "", "Also plot an accuracy histogram (png, svg or pdf)")
	flags.IntVar(&opts.bins, "bins", report.DefaultBins, "Histogram bins for --chart")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show statistics without writing any file")

	rootCmd.AddCommand(correlateCmd)
}

func runCorrelate(cmd *cobra.Command, songsFile, gpsFile string) error {
	s, err := opts.parse()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📖 Reading %s and %s\n", songsFile, gpsFile)

	in, err := load(songsFile, gpsFile, opts.refPath, s)
	if err != nil {
		return err
	}

	res, err := correlateInputs(in, s, newRangePrompt(os.Stdin, out))
	if err != nil {
		return err
	}

	summary := report.Summarize(res.pairings, res.stats)
	fmt.Fprintf(out, "\n📊 Correlation (%s tracks, run %s):\n", s.selection, runID)
	fmt.Fprint(out, summary)
	fmt.Fprintf(out, "🔁 Duplicates: %s\n", res.interp)

	if opts.dryRun {
		fmt.Fprintf(out, "🔍 Dry run completed - no files written\n")
		return nil
	}
	if len(res.pairings) == 0 {
		fmt.Fprintf(out, "❌ No songs were played during the GPS recording\n")
		return nil
	}

	target := opts.out
	if target == "" {
		target = defaultOutput(gpsFile)
	}
	meta := gpx.Metadata{
		Name:        "SpotifyGPX " + songsFile,
		Description: fmt.Sprintf("%d songs on %s", len(res.pairings), gpsFile),
		RunID:       runID,
	}
	if err := gpx.WriteWaypoints(target, res.pairings, meta); err != nil {
		return err
	}
	fmt.Fprintf(out, "💾 Waypoints written to %s\n", target)

	if opts.csvOut != "" {
		if err := report.WriteCSV(opts.csvOut, res.pairings); err != nil {
			return err
		}
		fmt.Fprintf(out, "💾 CSV written to %s\n", opts.csvOut)
	}
	if opts.jsonOut != "" {
		if err := report.WriteJSON(opts.jsonOut, runID, res.pairings, summary); err != nil {
			return err
		}
		fmt.Fprintf(out, "💾 JSON written to %s\n", opts.jsonOut)
	}
	if opts.chart != "" {
		if err := report.PlotAccuracy(opts.chart, res.pairings, opts.bins); err != nil {
			return err
		}
		fmt.Fprintf(out, "💾 Accuracy chart written to %s\n", opts.chart)
	}

	logger.Info("run finished",
		logger.String("run_id", runID),
		logger.String("output", target),
		logger.Int("pairings", len(res.pairings)))
	return nil
}
