// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"reelgrab/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagOutput        string
	flagQuiet         bool
	flagDebug         bool
	flagDebugDir      string
	flagSaveMetadata  bool
	flagSaveThumbnail bool
	flagContinue      bool
	flagSkipExisting  bool
	flagNoHistory     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "reelgrab",
	Short: "Download Instagram videos from the terminal",
	Long: `Reelgrab downloads Instagram reels and video posts.
Give it a post URL and it resolves the underlying video, saves it to your
output directory, and optionally writes a metadata sidecar next to it.`,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output directory for downloaded videos")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging plus unmatched-page dumps")
	rootCmd.PersistentFlags().StringVar(&flagDebugDir, "debug-dir", "", "Directory for debug artifacts (default: <output>/debug)")
	rootCmd.PersistentFlags().BoolVarP(&flagSaveMetadata, "save-metadata", "m", false, "Write a JSON metadata sidecar next to each video")
	rootCmd.PersistentFlags().BoolVar(&flagSaveThumbnail, "save-thumbnail", false, "Download the post thumbnail alongside the video")
	rootCmd.PersistentFlags().BoolVarP(&flagContinue, "continue-on-error", "c", false, "Keep going when a URL in a batch fails")
	rootCmd.PersistentFlags().BoolVarP(&flagSkipExisting, "skip-existing", "s", false, "Skip downloads whose target file already exists")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record downloads in the history database")

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fromFileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if flagDebugDir != "" {
		cfg.DebugDir = flagDebugDir
	}
	if flagQuiet {
		cfg.Quiet = true
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagSaveMetadata {
		cfg.SaveMetadata = true
	}
	if flagSaveThumbnail {
		cfg.SaveThumbnail = true
	}
	if flagContinue {
		cfg.ContinueOnError = true
	}
	if flagSkipExisting {
		cfg.SkipExisting = true
	}
	if flagNoHistory {
		cfg.History = false
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		log.SetOutput(os.Stderr)
		log.SetPrefix("[reelgrab] ")
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
