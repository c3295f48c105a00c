package cli

import (
	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/config"
	"github.com/untertitel/untertitel/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "untertitel",
	Short: "AI-powered subtitle generator for videos",
	Long: `Untertitel is a CLI tool that turns video and audio files into SRT
subtitles using AI transcription.

It supports multiple transcription providers, batch processing, language
detection, keyword extraction and chapter generation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		var err error
		cfg, err = config.Load()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language of the audio (e.g., de, en; 'auto' to detect)")
}
