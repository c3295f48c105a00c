package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// implements Extractor using Google Gemini
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiExtractor(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiExtractor{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (e *GeminiExtractor) Extract(
	ctx context.Context,
	text string,
	count int,
) ([]Keyword, error) {
	if strings.TrimSpace(text) == "" {
		return []Keyword{}, nil
	}

	count = normalizeCount(count)
	prompt := BuildPrompt(e.options, text, count)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	return e.parseResponse(result, count)
}

func (e *GeminiExtractor) parseResponse(
	result *genai.GenerateContentResponse,
	count int,
) ([]Keyword, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				responseText += part.Text
			}
		}
		if responseText != "" {
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
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

func (e *GeminiExtractor) Close() error {
	return nil
}

// Providers are asked for a ranked array but do not always comply.
// Sorts by score descending and trims to the requested count.
func rankKeywords(keywords []Keyword, count int) []Keyword {
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})
	if count > 0 && len(keywords) > count {
		keywords = keywords[:count]
	}
	return keywords
}

func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// fixes invalid JSON escape sequences the model sometimes emits,
// like \N, by escaping the backslash so JSON can parse it
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' {
			next := s[i+1]
			// Valid JSON escape sequences: ", \, /, b, f, n, r, t, u
			switch next {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
				result.WriteByte(s[i])
				result.WriteByte(s[i+1])
				i += 2
			default:
				result.WriteString("\\\\")
				result.WriteByte(next)
				i += 2
			}
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}

func extractKeywordResults(text string) ([]Keyword, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if keywords, ok := tryExtractKeywords(raw); ok && len(keywords) > 0 {
			return keywords, nil
		}
	}
	return nil, fmt.Errorf("no valid keyword JSON found in response")
}

func tryExtractKeywords(raw json.RawMessage) ([]Keyword, bool) {
	var keywords []Keyword
	if err := json.Unmarshal(
		raw,
		&keywords,
	); err == nil &&
		validateKeywords(keywords) {
		return keywords, true
	}

	wrapperKeys := []string{"keywords", "results", "data", "items"}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range wrapperKeys {
		if fieldRaw, exists := wrapper[key]; exists {
			var fieldKeywords []Keyword
			if err := json.Unmarshal(
				fieldRaw,
				&fieldKeywords,
			); err == nil && validateKeywords(fieldKeywords) {
				return fieldKeywords, true
			}
		}
	}

	for _, fieldRaw := range wrapper {
		var fieldKeywords []Keyword
		if err := json.Unmarshal(
			fieldRaw,
			&fieldKeywords,
		); err == nil && validateKeywords(fieldKeywords) {
			return fieldKeywords, true
		}
	}

	return nil, false
}

func validateKeywords(keywords []Keyword) bool {
	for _, k := range keywords {
		if k.Phrase != "" {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
