package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/config"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/interpolate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// options collects every flag of the correlate and analyze commands.
type options struct {
	logLevel string
	logFile  string

	timeUsage   string
	maxAccuracy time.Duration
	workers     int
	tracks      string

	interpolate string
	method      string
	ranges      string
	refPath     string

	out     string
	csvOut  string
	jsonOut string
	chart   string
	bins    int
	dryRun  bool
}

// addRunFlags registers the flags shared by every command that correlates.
func (o *options) addRunFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.timeUsage, "time-usage", "", "Which end of a playback to match: start or end")
	flags.DurationVar(&o.maxAccuracy, "max-accuracy", 0, "Drop pairings further than this from their sample (0 keeps all)")
	flags.IntVar(&o.workers, "workers", 0, "Parallel track matches per record")
	flags.StringVar(&o.tracks, "tracks", "", "Tracks to match against: originals, originals+gaps, gaps, combined or all")
	flags.StringVar(&o.interpolate, "interpolate", "", "Duplicate handling: off, auto or manual")
	flags.StringVar(&o.method, "method", "", "Interpolation method: equidistant or path")
	flags.StringVar(&o.ranges, "ranges", "", "Manual duplicate ranges, e.g. 3-5,9-12")
	flags.StringVar(&o.refPath, "path", "", "GPX file used as reference path by the path method")
}

// applyConfig fills every flag the user did not set from cfg.
func (o *options) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if !changed("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if !changed("log-file") {
		o.logFile = cfg.LogFile
	}
	if !changed("time-usage") {
		o.timeUsage = cfg.TimeUsage
	}
	if !changed("max-accuracy") {
		o.maxAccuracy = cfg.MaxAccuracy
	}
	if !changed("workers") {
		o.workers = cfg.Workers
	}
	if !changed("tracks") {
		o.tracks = cfg.Tracks
	}
	if !changed("interpolate") {
		o.interpolate = cfg.Interpolate
	}
	if !changed("method") {
		o.method = cfg.InterpMethod
	}
}

// settings is the parsed form of options.
type settings struct {
	usage     playback.TimeUsage
	selection track.Selection
	correlate correlate.Config
	interp    interpolate.Config
}

func (o *options) parse() (settings, error) {
	var s settings
	var err error

	if s.usage, err = playback.ParseTimeUsage(o.timeUsage); err != nil {
		return s, err
	}
	if s.selection, err = track.ParseSelection(o.tracks); err != nil {
		return s, err
	}
	if o.maxAccuracy < 0 {
		return s, fmt.Errorf("--max-accuracy must not be negative, got %v", o.maxAccuracy)
	}

	s.correlate = correlate.DefaultConfig()
	s.correlate.MaxAccuracy = o.maxAccuracy
	if o.workers > 0 {
		s.correlate.Workers = o.workers
	}

	s.interp = interpolate.DefaultConfig()
	if s.interp.Mode, err = interpolate.ParseMode(o.interpolate); err != nil {
		return s, err
	}
	if s.interp.Method, err = interpolate.ParseMethod(o.method); err != nil {
		return s, err
	}
	s.interp.Ranges = o.ranges

	return s, nil
}

// defaultOutput derives "<gps>_songs.gpx" next to the input.
func defaultOutput(gpsFile string) string {
	ext := filepath.Ext(gpsFile)
	return strings.TrimSuffix(gpsFile, ext) + "_songs" + ext
}
