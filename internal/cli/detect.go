package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/audio"
	"github.com/untertitel/untertitel/internal/transcribe"
)

var detectCmd = &cobra.Command{
	Use:   "detect [media_file]",
	Short: "Detect the spoken language of a media file",
	Long: `Detect the spoken language of an audio or video file.

A short sample from the start of the file is transcribed and the reported
language is analyzed with a confidence tier, so you can decide whether to
trust it before a full transcription run.

Examples:
  untertitel detect video.mp4
  untertitel detect audio.mp3 --sample-duration 60
  untertitel detect video.mp4 --provider gemini`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().
		StringP("api-key", "k", "", "API key for the transcription provider (or set OPENAI_API_KEY/GEMINI_API_KEY)")
	detectCmd.Flags().
		String("provider", "", "Transcription provider (openai, gemini)")
	detectCmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific default)")
	detectCmd.Flags().
		Int("sample-duration", 30, "Sample length in seconds to analyze")
}

func runDetect(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = cfg.Provider
	}
	switch transcribe.Provider(provider) {
	case transcribe.ProviderOpenAI, transcribe.ProviderGemini:
	default:
		return fmt.Errorf(
			"unsupported provider %q: use openai or gemini",
			provider,
		)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.APIKey(provider)
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.Model
	}

	sampleSeconds, _ := cmd.Flags().GetInt("sample-duration")
	if sampleSeconds < 1 {
		return fmt.Errorf(
			"sample duration must be at least 1 second, got %d",
			sampleSeconds,
		)
	}

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(provider),
		apiKey,
		transcribe.Options{Language: "auto", Model: model},
	)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "untertitel-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Infow("Extracting detection sample",
		"input", mediaPath,
		"seconds", sampleSeconds,
	)

	samplePath := filepath.Join(tempDir, "sample.wav")
	if err := audio.ExtractSample(
		ctx,
		mediaPath,
		samplePath,
		time.Duration(sampleSeconds)*time.Second,
	); err != nil {
		return fmt.Errorf("failed to extract sample: %w", err)
	}

	logger.Infow("Transcribing sample")

	result, err := transcriber.Transcribe(ctx, samplePath)
	if err != nil {
		return fmt.Errorf("sample transcription failed: %w", err)
	}

	analysis := transcribe.AnalyzeDetection(
		result.Language,
		result.LanguageProbability,
	)
	if analysis.Code == "" {
		return fmt.Errorf("provider did not report a language")
	}

	fmt.Printf("Detected language: %s (%s)\n", analysis.Name, analysis.Code)
	if analysis.Confidence > 0 {
		fmt.Printf("  Confidence: %.2f (%s)\n", analysis.Confidence, analysis.Level)
	} else {
		fmt.Printf("  Confidence: not reported (%s)\n", analysis.Level)
	}
	fmt.Printf("  Recommendation: %s\n", analysis.Recommendation)

	return nil
}
