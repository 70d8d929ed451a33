package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/correlate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/geo"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/gpx"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/interpolate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// inputs is everything read from disk before correlation starts.
type inputs struct {
	entries []playback.Entry
	all     []track.Track
	tracks  []track.Track
	path    []geo.Coordinate
}

// result is one finished correlation run.
type result struct {
	inputs
	records  []playback.Record
	pairings []correlate.Pairing
	stats    correlate.Stats
	interp   interpolate.Stats
}

func load(songsFile, gpsFile, refPath string, s settings) (inputs, error) {
	var in inputs

	entries, err := playback.Load(songsFile, s.usage)
	if err != nil {
		return in, fmt.Errorf("read songs: %w", err)
	}
	in.entries = entries

	originals, err := gpx.ParseTracks(gpsFile)
	if err != nil {
		return in, fmt.Errorf("read gps: %w", err)
	}
	in.all, err = track.Assemble(originals)
	if err != nil {
		return in, err
	}
	in.tracks = track.Select(in.all, s.selection)
	if len(in.tracks) == 0 {
		return in, fmt.Errorf("no %s tracks in %s", s.selection, gpsFile)
	}

	if refPath != "" {
		if in.path, err = gpx.ParsePath(refPath); err != nil {
			return in, fmt.Errorf("read reference path: %w", err)
		}
	}

	logger.Info("inputs loaded",
		logger.Int("entries", len(entries)),
		logger.Int("originals", len(originals)),
		logger.Int("selected_tracks", len(in.tracks)),
		logger.Int("path_points", len(in.path)))

	return in, nil
}

// correlateInputs pairs the records that fall inside the combined span of
// the selected tracks, then runs the duplicate pass. Manual ranges that do
// not validate are asked for again on prompt.
func correlateInputs(in inputs, s settings, prompt *rangePrompt) (*result, error) {
	res := &result{inputs: in}

	start, end := span(in.tracks)
	all := playback.Records(in.entries)
	res.records = playback.Filter(all, start, end)
	if dropped := len(all) - len(res.records); dropped > 0 {
		logger.Info("records outside gps span ignored", logger.Int("count", dropped))
	}

	pairings, stats, err := correlate.Correlate(res.records, in.tracks, s.correlate)
	if err != nil {
		return nil, err
	}
	res.pairings = pairings
	res.stats = stats

	cfg := s.interp
	cfg.ReferencePath = in.path

	for {
		res.interp, err = interpolate.Run(res.pairings, cfg)
		if err == nil {
			break
		}
		var verr *interpolate.ValidationError
		if !errors.As(err, &verr) || prompt == nil {
			return nil, err
		}
		cfg.Ranges, err = prompt.ask(verr, interpolate.FindClusters(res.pairings))
		if err != nil {
			return nil, err
		}
	}

	return res, nil
}

func span(tracks []track.Track) (start, end time.Time) {
	for i, t := range tracks {
		if i == 0 || t.Start().Before(start) {
			start = t.Start()
		}
		if i == 0 || t.End().After(end) {
			end = t.End()
		}
	}
	return start, end
}
