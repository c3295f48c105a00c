package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/keywords"
	"github.com/untertitel/untertitel/internal/subtitle"
	"github.com/untertitel/untertitel/internal/transcribe"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [file]",
	Short: "Extract keywords from a subtitle or text file",
	Long: `Extract the most important keywords and key phrases from an SRT
subtitle file or a plain text transcript.

The ranked keywords are printed and written to a sidecar file next to
the input.

Examples:
  untertitel keywords talk.srt
  untertitel keywords transcript.txt --count 20
  untertitel keywords talk.srt --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().
		StringP("api-key", "k", "", "API key for the keyword provider (or set the provider's env var)")
	keywordsCmd.Flags().
		String("provider", "", "Keyword provider (gemini, openai, anthropic)")
	keywordsCmd.Flags().
		String("model", "", "Model to use for keyword extraction (provider-specific default)")
	keywordsCmd.Flags().
		IntP("count", "n", keywords.DefaultCount, "Number of keywords to extract")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := context.Background()

	text, err := readTranscript(inputPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input contains no text: %s", inputPath)
	}

	provider, apiKey, err := keywordProviderFromFlags(cmd)
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	count, _ := cmd.Flags().GetInt("count")

	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Language
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = keywords.SidecarPath(filepath.Dir(inputPath), inputPath)
	}

	opts := keywords.Options{Model: model}
	if code := transcribe.NormalizeLanguageCode(language); code != "" {
		opts.Language = transcribe.LanguageName(code)
	}

	extractor, err := keywords.Factory(
		ctx,
		keywords.Provider(provider),
		apiKey,
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to create keyword extractor: %w", err)
	}

	logger.Infow("Extracting keywords",
		"input", inputPath,
		"provider", provider,
		"count", count,
	)

	kws, err := extractor.Extract(ctx, text, count)
	if err != nil {
		return fmt.Errorf("keyword extraction failed: %w", err)
	}
	if len(kws) == 0 {
		return fmt.Errorf("no keywords extracted")
	}

	if err := keywords.WriteSidecar(kws, outputPath); err != nil {
		return fmt.Errorf("failed to write keyword file: %w", err)
	}

	fmt.Printf("Extracted %d keywords:\n", len(kws))
	for i, kw := range kws {
		fmt.Printf("  %2d. %s (%.3f)\n", i+1, kw.Phrase, kw.Score)
	}
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Saved to: %s\n", absOutput)

	return nil
}

// readTranscript loads analysis text from an SRT file or a plain text
// transcript.
func readTranscript(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		file, err := subtitle.Open(path)
		if err != nil {
			return "", fmt.Errorf("failed to parse subtitle file: %w", err)
		}
		return file.Text(), nil
	case ".txt", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf(
		"unsupported input %q: use an .srt or .txt file",
		filepath.Ext(path),
	)
}

// keywordProviderFromFlags resolves the keyword provider and API key
// from flags and config.
func keywordProviderFromFlags(cmd *cobra.Command) (string, string, error) {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = cfg.KeywordProvider
	}
	if provider == "" {
		provider = cfg.Provider
	}
	switch keywords.Provider(provider) {
	case keywords.ProviderGemini, keywords.ProviderOpenAI, keywords.ProviderAnthropic:
	default:
		return "", "", fmt.Errorf(
			"unsupported keyword provider %q: use gemini, openai, or anthropic",
			provider,
		)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.APIKey(provider)
	}
	if apiKey == "" {
		return "", "", fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	return provider, apiKey, nil
}
