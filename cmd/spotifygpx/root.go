package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/simon-techkid/SpotifyGPX-sub000/internal/config"
	"github.com/simon-techkid/SpotifyGPX-sub000/internal/logger"
)

var (
	opts    = &options{}
	envFile string
	runID   string
)

var rootCmd = &cobra.Command{
	Use:           "spotifygpx",
	Short:         "Place Spotify playback history on a GPS track.",
	Long:          "spotifygpx pairs every song in a Spotify streaming history export with the nearest GPS sample of a GPX recording and writes the result as waypoints.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var cfg *config.Config
		if envFile != "" {
			cfg = config.Load(envFile)
		} else {
			cfg = config.Load()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		opts.applyConfig(cmd, cfg)

		logCfg := logger.DefaultConfig()
		logCfg.Level = logger.ParseLevel(opts.logLevel)
		logCfg.OutputPath = opts.logFile
		logger.InitLogger(logCfg)

		runID = uuid.NewString()
		logger.Debug("starting run",
			logger.String("run_id", runID),
			logger.String("command", cmd.Name()),
			logger.Bool("dotenv", cfg.DotEnv))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", "", "Load defaults from this .env file instead of ./.env")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this rotated file")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
