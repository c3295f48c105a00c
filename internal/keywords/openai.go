package keywords

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Extractor using OpenAI Chat Completions
type OpenAIExtractor struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAIExtractor(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &OpenAIExtractor{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (e *OpenAIExtractor) Extract(
	ctx context.Context,
	text string,
	count int,
) ([]Keyword, error) {
	if strings.TrimSpace(text) == "" {
		return []Keyword{}, nil
	}

	count = normalizeCount(count)
	prompt := BuildPrompt(e.options, text, count)

	completion, err := e.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: e.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	return e.parseResponse(completion, count)
}

func (e *OpenAIExtractor) parseResponse(
	completion *openai.ChatCompletion,
	count int,
) ([]Keyword, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	responseText := completion.Choices[0].Message.Content

	if responseText == "" {
		return nil, fmt.Errorf("no text in OpenAI response")
	}

	responseText = cleanJSONResponse(responseText)

	keywords, err := extractKeywordResults(responseText)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	return rankKeywords(keywords, count), nil
}

func (e *OpenAIExtractor) Close() error {
	return nil
}
