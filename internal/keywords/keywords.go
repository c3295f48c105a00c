package keywords

import (
	"context"
	"fmt"
	"strings"
)

// single ranked phrase extracted from a transcript
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// interface for keyword extraction
type Extractor interface {
	Extract(ctx context.Context, text string, count int) ([]Keyword, error)
}

// keyword extraction service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// DefaultCount is used when a caller asks for zero or fewer keywords.
const DefaultCount = 10

type Options struct {
	Language string // display name of the transcript language, for the prompt
	Model    string
	Prompt   string // extra instructions appended to the request
}

// creates Extractor based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Extractor, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiExtractor(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIExtractor(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicExtractor(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported keyword provider: %s", provider)
	}
}

func normalizeCount(count int) int {
	if count <= 0 {
		return DefaultCount
	}
	return count
}

// BuildPrompt creates the keyword extraction prompt for LLM providers
func BuildPrompt(opts Options, text string, count int) string {
	var sb strings.Builder

	if opts.Language != "" {
		sb.WriteString(fmt.Sprintf(
			"Extract the %d most important keywords and key phrases "+
				"from the following %s transcript.\n\n",
			count,
			opts.Language,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Extract the %d most important keywords and key phrases "+
				"from the following transcript.\n\n",
			count,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Prefer short phrases of one to three words.\n")
	sb.WriteString(
		"2. Focus on topics, names and terms a viewer would search for.\n",
	)
	sb.WriteString("3. Keep the keywords in the language of the transcript.\n")
	sb.WriteString(
		"4. Score each keyword between 0 and 1 by how central it is " +
			"to the text.\n",
	)
	sb.WriteString("5. Order the array from highest to lowest score.\n")
	sb.WriteString(
		"6. Return ONLY a JSON array of objects with 'phrase' and " +
			"'score' fields.\n",
	)
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(
			fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt),
		)
	}

	sb.WriteString("Transcript:\n")
	sb.WriteString(text)
	sb.WriteString("\n\nOutput the keyword JSON array only:")

	return sb.String()
}
