package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/chapters"
	"github.com/untertitel/untertitel/internal/subtitle"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters [subtitle_file]",
	Short: "Generate chapter markers from a subtitle file",
	Long: `Generate chapter markers from an SRT subtitle file.

The transcript is grouped into time windows and compared window to
window; a sharp topic change starts a new chapter. Chapter titles come
from per-window keywords when an API key for a keyword provider is
configured, otherwise from content heuristics.

Two files are written next to the input (or into the -o directory):
a YouTube description snippet and a detailed analysis.

Examples:
  untertitel chapters talk.srt
  untertitel chapters talk.srt --window 120
  untertitel chapters talk.srt --provider anthropic -o output/`,
	Args: cobra.ExactArgs(1),
	RunE: runChapters,
}

func init() {
	rootCmd.AddCommand(chaptersCmd)

	chaptersCmd.Flags().
		StringP("api-key", "k", "", "API key for the keyword provider (or set the provider's env var)")
	chaptersCmd.Flags().
		String("provider", "", "Keyword provider for chapter titles (gemini, openai, anthropic)")
	chaptersCmd.Flags().
		String("model", "", "Model to use for keyword extraction (provider-specific default)")
	chaptersCmd.Flags().
		Int("window", 90, "Window length in seconds for topic analysis")
}

func runChapters(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if strings.ToLower(filepath.Ext(inputPath)) != ".srt" {
		return fmt.Errorf(
			"unsupported input %q: chapters need an .srt file",
			filepath.Ext(inputPath),
		)
	}

	file, err := subtitle.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	entries := file.Entries()
	if len(entries) == 0 {
		return fmt.Errorf("subtitle file contains no entries")
	}

	window, _ := cmd.Flags().GetInt("window")
	if window < 1 {
		return fmt.Errorf("window must be at least 1 second, got %d", window)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}

	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = cfg.KeywordProvider
	}
	if provider == "" {
		provider = cfg.Provider
	}
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.APIKey(provider)
	}
	model, _ := cmd.Flags().GetString("model")
	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Language
	}

	extractor := newKeywordExtractor(ctx, provider, apiKey, language, model)
	if extractor == nil {
		logger.Warnw("Generating chapter titles without keywords",
			"provider", provider,
		)
	}

	opts := chapters.DefaultOptions()
	opts.WindowSeconds = float64(window)

	logger.Infow("Generating chapters",
		"input", inputPath,
		"entries", len(entries),
		"window_seconds", window,
	)

	gen := chapters.NewGenerator(extractor, opts)
	summary, err := gen.Generate(ctx, entries)
	if err != nil {
		return fmt.Errorf("chapter generation failed: %w", err)
	}
	for _, warning := range summary.Warnings {
		logger.Warnw(warning)
	}
	if len(summary.Chapters) == 0 {
		return fmt.Errorf("no chapters detected")
	}

	youtubePath := chapters.YouTubePath(outputDir, inputPath)
	if err := chapters.WriteYouTubeFile(summary, youtubePath); err != nil {
		return fmt.Errorf("failed to write chapter file: %w", err)
	}
	detailedPath := chapters.DetailedPath(outputDir, inputPath)
	if err := chapters.WriteDetailedFile(summary, detailedPath); err != nil {
		return fmt.Errorf("failed to write chapter analysis: %w", err)
	}

	fmt.Printf("Generated %d chapters from %d windows:\n\n",
		len(summary.Chapters), summary.Windows)
	fmt.Println(chapters.FormatYouTube(summary.Chapters))

	absYouTube, _ := filepath.Abs(youtubePath)
	absDetailed, _ := filepath.Abs(detailedPath)
	fmt.Printf("\nSaved to:\n")
	fmt.Printf("  %s\n", absYouTube)
	fmt.Printf("  %s\n", absDetailed)

	return nil
}
