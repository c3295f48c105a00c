package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/untertitel/untertitel/internal/audio"
	"github.com/untertitel/untertitel/internal/subtitle"
)

// transcription result
type Result struct {
	Segments []subtitle.Segment
	Text     string
	Language string
	// confidence of the language detection, 0 when the provider does
	// not report one
	LanguageProbability float64
	Duration            time.Duration
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

type ConcurrentTranscriber interface {
	Transcriber
	TranscribeWithChunks(
		ctx context.Context,
		chunks []audio.ChunkInfo,
		concurrency int,
	) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	// Source language of the audio. "auto" asks the provider to
	// detect it.
	Language           string
	TranscriptLanguage string // Output language for transcript (default: "native")
	Model              string
	Prompt             string
}

// reports whether the caller wants the provider to detect the
// language instead of trusting a hint
func (o Options) DetectLanguage() bool {
	switch o.Language {
	case "", "auto", "detect":
		return true
	}
	return false
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
