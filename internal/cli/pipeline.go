package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/audio"
	"github.com/untertitel/untertitel/internal/chapters"
	"github.com/untertitel/untertitel/internal/keywords"
	"github.com/untertitel/untertitel/internal/subtitle"
	"github.com/untertitel/untertitel/internal/transcribe"
	"github.com/untertitel/untertitel/internal/video"
)

const detectSampleDuration = 30 * time.Second

// pipelineOptions collects everything one subtitle generation run
// needs. Flags win over config; pipelineOptionsFromFlags applies the
// fallbacks.
type pipelineOptions struct {
	Provider           string
	APIKey             string
	Model              string
	Language           string
	TranscriptLanguage string
	ChunkMinutes       int
	Concurrency        int

	// OutputPath is the explicit -o target for a single file. When
	// empty the subtitle lands in OutputDir under the media base name.
	OutputPath string
	OutputDir  string

	MaxLineLength int

	Keywords        bool
	KeywordCount    int
	KeywordProvider string
	KeywordAPIKey   string
	Chapters        bool
	Preview         bool
}

type pipelineResult struct {
	OutputPath string
	Entries    int
	Duration   time.Duration
}

// addPipelineFlags registers the transcription flags shared by the
// generate, batch and watch commands.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringP("api-key", "k", "", "API key for the transcription provider (or set OPENAI_API_KEY/GEMINI_API_KEY)")
	cmd.Flags().
		String("provider", "", "Transcription provider (openai, gemini)")
	cmd.Flags().
		String("model", "", "Model to use for transcription (provider-specific default)")
	cmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	cmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	cmd.Flags().
		String("transcript-language", "native", "Output language for the transcript (e.g., 'english', or 'native' for the original language)")
	cmd.Flags().
		Bool("keywords", false, "Extract keywords from the transcript into a sidecar file")
	cmd.Flags().
		Int("keyword-count", keywords.DefaultCount, "Number of keywords to extract")
	cmd.Flags().
		Bool("chapters", false, "Generate chapter marker files from the transcript")
	cmd.Flags().
		Bool("preview", false, "Print a preview and quality report after writing")
	cmd.Flags().
		Int("max-line-length", 0, "Wrap subtitle lines at this many characters (0 keeps transcriber layout)")
}

// pipelineOptionsFromFlags merges command flags with config defaults
// and validates the combination.
func pipelineOptionsFromFlags(cmd *cobra.Command) (pipelineOptions, error) {
	var opts pipelineOptions

	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = cfg.Provider
	}
	switch transcribe.Provider(provider) {
	case transcribe.ProviderOpenAI, transcribe.ProviderGemini:
	default:
		return opts, fmt.Errorf(
			"unsupported provider %q: use openai or gemini",
			provider,
		)
	}
	opts.Provider = provider

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = cfg.APIKey(provider)
	}
	if apiKey == "" {
		return opts, fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}
	opts.APIKey = apiKey

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.Model
	}
	opts.Model = model

	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Language
	}
	opts.Language = language

	opts.TranscriptLanguage, _ = cmd.Flags().GetString("transcript-language")
	if transcribe.Provider(provider) == transcribe.ProviderOpenAI &&
		!isValidOpenAITranscriptLanguage(opts.TranscriptLanguage) {
		return opts, fmt.Errorf(
			"unsupported transcript language %q for OpenAI: only 'native' or 'english' are available",
			opts.TranscriptLanguage,
		)
	}

	opts.ChunkMinutes, _ = cmd.Flags().GetInt("chunk-duration")
	if !cmd.Flags().Changed("chunk-duration") {
		opts.ChunkMinutes = cfg.ChunkMinutes
	}
	if opts.ChunkMinutes < 1 {
		return opts, fmt.Errorf(
			"chunk duration must be at least 1 minute, got %d",
			opts.ChunkMinutes,
		)
	}

	opts.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	if !cmd.Flags().Changed("concurrency") {
		opts.Concurrency = cfg.Concurrency
	}
	if opts.Concurrency < 1 {
		return opts, fmt.Errorf(
			"concurrency must be at least 1, got %d",
			opts.Concurrency,
		)
	}

	opts.OutputPath, _ = cmd.Flags().GetString("output")
	opts.OutputDir = cfg.OutputDir

	opts.MaxLineLength, _ = cmd.Flags().GetInt("max-line-length")
	opts.Keywords, _ = cmd.Flags().GetBool("keywords")
	opts.KeywordCount, _ = cmd.Flags().GetInt("keyword-count")
	opts.Chapters, _ = cmd.Flags().GetBool("chapters")
	opts.Preview, _ = cmd.Flags().GetBool("preview")

	if opts.Keywords || opts.Chapters {
		kwProvider := cfg.KeywordProvider
		if kwProvider == "" {
			kwProvider = provider
		}
		opts.KeywordProvider = kwProvider

		kwKey := cfg.APIKey(kwProvider)
		if kwKey == "" && kwProvider == provider {
			kwKey = apiKey
		}
		opts.KeywordAPIKey = kwKey

		if opts.Keywords && kwKey == "" {
			return opts, fmt.Errorf(
				"keyword extraction requires an API key for provider %s: set %s environment variable",
				kwProvider,
				apiKeyEnvVar(kwProvider),
			)
		}
	}

	return opts, nil
}

// The OpenAI transcription endpoint returns the transcript either in
// the original language or translated to English, nothing else.
func isValidOpenAITranscriptLanguage(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "native", "english", "en":
		return true
	}
	return false
}

func apiKeyEnvVar(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	}
	return "API_KEY"
}

// defaultSubtitlePath is <outputDir>/<media base>.srt.
func defaultSubtitlePath(outputDir, mediaPath string) string {
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	return filepath.Join(outputDir, base+".srt")
}

// runPipeline turns one media file into an SRT subtitle file plus the
// requested companion files. It is shared by generate, batch and
// watch.
func runPipeline(
	ctx context.Context,
	mediaPath string,
	opts pipelineOptions,
) (*pipelineResult, error) {
	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return nil, fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultSubtitlePath(opts.OutputDir, mediaPath)
	}

	logger.Infow("Starting subtitle generation",
		"input", mediaPath,
		"output", outputPath,
		"provider", opts.Provider,
		"chunk_duration", opts.ChunkMinutes,
		"concurrency", opts.Concurrency,
	)

	tempDir, err := os.MkdirTemp("", "untertitel-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath, err := prepareAudio(ctx, mediaPath, tempDir)
	if err != nil {
		return nil, err
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	language := opts.Language
	if (transcribe.Options{Language: language}).DetectLanguage() {
		detected, err := detectLanguage(ctx, audioPath, tempDir, opts)
		if err != nil {
			logger.Warnw("Language detection failed, using configured default",
				"fallback", cfg.Language,
				"error", err,
			)
			language = cfg.Language
		} else {
			language = detected
		}
	}

	chunkDir := filepath.Join(tempDir, "chunks")
	chunkDur := time.Duration(opts.ChunkMinutes) * time.Minute

	logger.Infow("Splitting audio into chunks",
		"chunk_duration", chunkDur.String(),
	)

	chunks, err := audio.ChunkAudio(ctx, audioPath, chunkDur, chunkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	logger.Infow("Created audio chunks",
		"count", len(chunks),
	)

	transcribeOpts := transcribe.Options{
		Language:           language,
		TranscriptLanguage: opts.TranscriptLanguage,
		Model:              opts.Model,
	}

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(opts.Provider),
		opts.APIKey,
		transcribeOpts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	concurrent, ok := transcriber.(transcribe.ConcurrentTranscriber)
	if !ok {
		return nil, fmt.Errorf(
			"provider %s does not support chunked transcription",
			opts.Provider,
		)
	}

	logger.Infow("Transcribing audio",
		"concurrency", opts.Concurrency,
	)

	result, err := concurrent.TranscribeWithChunks(ctx, chunks, opts.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	logger.Infow("Transcription complete",
		"segments", len(result.Segments),
	)

	generator := subtitle.NewDefaultGenerator()
	if opts.MaxLineLength > 0 {
		generator = &subtitle.DefaultGenerator{
			MaxCharsPerLine: opts.MaxLineLength,
			MaxLinesPerSub:  2,
		}
	}

	subs, err := generator.Generate(result.Segments)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subtitles: %w", err)
	}

	subs.Language = language
	subs.Format = string(subtitle.FormatSRT)

	if err := subtitle.NewSRTWriter().Write(subs, outputPath); err != nil {
		return nil, fmt.Errorf("failed to write subtitles: %w", err)
	}

	if opts.Keywords || opts.Chapters {
		runSidecars(ctx, mediaPath, subs, opts)
	}

	if opts.Preview {
		printPreview(subs.Entries, 10)
	}

	return &pipelineResult{
		OutputPath: outputPath,
		Entries:    len(subs.Entries),
		Duration:   duration,
	}, nil
}

// prepareAudio converts the input into a single audio file under
// tempDir ready for chunking: videos lose their video stream, audio
// files are recompressed for upload.
func prepareAudio(ctx context.Context, mediaPath, tempDir string) (string, error) {
	if audio.IsVideoFile(mediaPath) {
		processor := video.NewProcessor(tempDir)

		info, err := processor.GetInfo(ctx, mediaPath)
		if err != nil {
			return "", fmt.Errorf("failed to probe video: %w", err)
		}
		if !info.HasAudio {
			return "", fmt.Errorf("video has no audio track: %s", mediaPath)
		}

		logger.Infow("Extracting audio from video",
			"duration", info.Duration.String(),
			"codec", info.Codec,
		)

		audioPath := filepath.Join(tempDir, "audio.wav")
		if err := processor.ExtractAudio(
			ctx,
			mediaPath,
			audioPath,
			video.DefaultExtractAudioOptions(),
		); err != nil {
			return "", fmt.Errorf("failed to extract audio: %w", err)
		}
		return audioPath, nil
	}

	logger.Infow("Compressing audio for transcription")

	audioPath := filepath.Join(tempDir, "audio.mp3")
	if err := audio.CompressAudio(
		ctx,
		mediaPath,
		audioPath,
		audio.DefaultCompressionOptions(),
	); err != nil {
		return "", fmt.Errorf("failed to compress audio: %w", err)
	}
	return audioPath, nil
}

// detectLanguage transcribes a short sample with the "auto" hint and
// returns the analyzed language code.
func detectLanguage(
	ctx context.Context,
	audioPath, tempDir string,
	opts pipelineOptions,
) (string, error) {
	samplePath := filepath.Join(tempDir, "sample.wav")
	if err := audio.ExtractSample(
		ctx,
		audioPath,
		samplePath,
		detectSampleDuration,
	); err != nil {
		return "", fmt.Errorf("failed to extract detection sample: %w", err)
	}

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(opts.Provider),
		opts.APIKey,
		transcribe.Options{Language: "auto", Model: opts.Model},
	)
	if err != nil {
		return "", err
	}

	result, err := transcriber.Transcribe(ctx, samplePath)
	if err != nil {
		return "", fmt.Errorf("sample transcription failed: %w", err)
	}

	analysis := transcribe.AnalyzeDetection(
		result.Language,
		result.LanguageProbability,
	)
	if analysis.Code == "" {
		return "", fmt.Errorf("provider did not report a language")
	}

	logger.Infow("Language detected",
		"language", analysis.Name,
		"code", analysis.Code,
		"confidence", analysis.Confidence,
		"level", analysis.Level,
	)
	if analysis.Level == transcribe.ConfidenceLow ||
		analysis.Level == transcribe.ConfidenceUnverified {
		logger.Warnw("Low confidence language detection",
			"recommendation", analysis.Recommendation,
		)
	}

	return analysis.Code, nil
}

// runSidecars writes the keyword and chapter companion files. The
// subtitle document is already on disk at this point, so failures here
// degrade to warnings instead of failing the run.
func runSidecars(
	ctx context.Context,
	mediaPath string,
	subs *subtitle.Subtitle,
	opts pipelineOptions,
) {
	extractor := newKeywordExtractor(
		ctx,
		opts.KeywordProvider,
		opts.KeywordAPIKey,
		subs.Language,
		"",
	)

	if opts.Keywords {
		if extractor == nil {
			logger.Warnw("Skipping keyword extraction, no extractor available",
				"provider", opts.KeywordProvider,
			)
		} else {
			kws, err := extractor.Extract(
				ctx,
				transcriptText(subs.Entries),
				opts.KeywordCount,
			)
			if err != nil {
				logger.Warnw("Keyword extraction failed",
					"error", err,
				)
			} else {
				sidecarPath := keywords.SidecarPath(opts.OutputDir, mediaPath)
				if err := keywords.WriteSidecar(kws, sidecarPath); err != nil {
					logger.Warnw("Failed to write keyword sidecar",
						"error", err,
					)
				} else {
					logger.Infow("Keywords extracted",
						"count", len(kws),
						"output", sidecarPath,
					)
				}
			}
		}
	}

	if opts.Chapters {
		if extractor == nil {
			logger.Warnw("Generating chapter titles without keywords",
				"provider", opts.KeywordProvider,
			)
		}

		gen := chapters.NewGenerator(extractor, chapters.DefaultOptions())
		summary, err := gen.Generate(ctx, subs.Entries)
		if err != nil {
			logger.Warnw("Chapter generation failed",
				"error", err,
			)
			return
		}
		for _, warning := range summary.Warnings {
			logger.Warnw(warning)
		}

		youtubePath := chapters.YouTubePath(opts.OutputDir, mediaPath)
		if err := chapters.WriteYouTubeFile(summary, youtubePath); err != nil {
			logger.Warnw("Failed to write chapter file",
				"error", err,
			)
			return
		}
		detailedPath := chapters.DetailedPath(opts.OutputDir, mediaPath)
		if err := chapters.WriteDetailedFile(summary, detailedPath); err != nil {
			logger.Warnw("Failed to write chapter analysis",
				"error", err,
			)
			return
		}

		logger.Infow("Chapters generated",
			"count", len(summary.Chapters),
			"output", youtubePath,
		)
	}
}

// newKeywordExtractor builds an extractor for sidecar generation, or
// nil when no API key is configured for the provider.
func newKeywordExtractor(
	ctx context.Context,
	provider, apiKey, language, model string,
) keywords.Extractor {
	if apiKey == "" {
		return nil
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
		logger.Warnw("Failed to create keyword extractor",
			"provider", provider,
			"error", err,
		)
		return nil
	}
	return extractor
}

// transcriptText joins cue texts for full text analysis.
func transcriptText(entries []subtitle.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := strings.TrimSpace(entry.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
