package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/interpolate"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/playback"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/track"
)

// Prefix is prepended to every environment variable read by Load.
const Prefix = "SPOTIFYGPX_"

// Config holds defaults for a run. Command-line flags override it.
type Config struct {
	LogLevel string
	LogFile  string

	TimeUsage   string
	MaxAccuracy time.Duration // 0 disables the ceiling
	Workers     int
	Tracks      string

	Interpolate  string
	InterpMethod string

	// DotEnv reports whether a .env file was found.
	DotEnv bool
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s", "2m") or bare seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(Prefix + key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// Load reads the given .env files (".env" when none are named) without
// overriding variables already set, then builds the config from the environment.
func Load(files ...string) *Config {
	err := godotenv.Load(files...)

	return &Config{
		DotEnv:       err == nil,
		LogLevel:     getEnv("LOG_LEVEL", string(logger.InfoLevel)),
		LogFile:      getEnv("LOG_FILE", ""),
		TimeUsage:    getEnv("TIME_USAGE", playback.UseEnd.String()),
		MaxAccuracy:  getEnvDuration("MAX_ACCURACY", 0),
		Workers:      getEnvInt("WORKERS", runtime.NumCPU()),
		Tracks:       getEnv("TRACKS", track.SelectOriginals.String()),
		Interpolate:  getEnv("INTERPOLATE", interpolate.Auto.String()),
		InterpMethod: getEnv("INTERP_METHOD", interpolate.Equidistant.String()),
	}
}

// Validate checks that every enumerated setting names a known value.
func (c *Config) Validate() error {
	if _, err := playback.ParseTimeUsage(c.TimeUsage); err != nil {
		return fmt.Errorf("%sTIME_USAGE: %w", Prefix, err)
	}
	if _, err := track.ParseSelection(c.Tracks); err != nil {
		return fmt.Errorf("%sTRACKS: %w", Prefix, err)
	}
	if _, err := interpolate.ParseMode(c.Interpolate); err != nil {
		return fmt.Errorf("%sINTERPOLATE: %w", Prefix, err)
	}
	if _, err := interpolate.ParseMethod(c.InterpMethod); err != nil {
		return fmt.Errorf("%sINTERP_METHOD: %w", Prefix, err)
	}
	if c.MaxAccuracy < 0 {
		return fmt.Errorf("%sMAX_ACCURACY must not be negative", Prefix)
	}
	return nil
}
