package playback

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// historyRow covers both the extended ("ts") and the account-data
// ("endTime") streaming history layouts.
type historyRow struct {
	TS       string `json:"ts"`
	MsPlayed int64  `json:"ms_played"`
	Track    string `json:"master_metadata_track_name"`
	Artist   string `json:"master_metadata_album_artist_name"`
	Album    string `json:"master_metadata_album_album_name"`
	URI      string `json:"spotify_track_uri"`

	EndTime        string `json:"endTime"`
	LegacyMsPlayed int64  `json:"msPlayed"`
	LegacyTrack    string `json:"trackName"`
	LegacyArtist   string `json:"artistName"`
}

// Load reads a streaming history JSON file.
func Load(filename string, usage TimeUsage) ([]Entry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file, usage)
}

// Decode parses streaming history from r. Rows without a usable timestamp
// are skipped. Entries come back sorted by end time and indexed in that order.
func Decode(r io.Reader, usage TimeUsage) ([]Entry, error) {
	var rows []historyRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to parse streaming history: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entry, ok := row.entry(usage)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].End.Before(entries[j].End)
	})
	for i := range entries {
		entries[i].Index = i
	}

	return entries, nil
}

func (row historyRow) entry(usage TimeUsage) (Entry, bool) {
	if row.TS != "" {
		end := parseTimeSafe(row.TS)
		if end.IsZero() {
			return Entry{}, false
		}
		return Entry{
			Track:  row.Track,
			Artist: row.Artist,
			Album:  row.Album,
			URI:    row.URI,
			End:    end,
			Played: time.Duration(row.MsPlayed) * time.Millisecond,
			Usage:  usage,
		}, true
	}

	if row.EndTime != "" {
		end := parseTimeSafe(row.EndTime)
		if end.IsZero() {
			return Entry{}, false
		}
		return Entry{
			Track:  row.LegacyTrack,
			Artist: row.LegacyArtist,
			End:    end,
			Played: time.Duration(row.LegacyMsPlayed) * time.Millisecond,
			Usage:  usage,
		}, true
	}

	return Entry{}, false
}

// parseTimeSafe tries the layouts seen in streaming history exports.
// Zone-less layouts are read as UTC.
func parseTimeSafe(s string) time.Time {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// Records adapts entries to the Record interface.
func Records(entries []Entry) []Record {
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = e
	}
	return out
}
