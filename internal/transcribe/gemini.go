package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/untertitel/untertitel/internal/audio"
	"github.com/untertitel/untertitel/internal/subtitle"
)

// implements Transcriber interface using Google Gemini
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

// segment from Gemini's JSON response
type transcriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// top level object Gemini returns when asked to detect the language
type transcriptEnvelope struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
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

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	prompt := t.buildTranscriptionPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	segments, language, confidence, err := t.parseTranscriptionResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	if language == "" {
		language = t.options.Language
	}

	duration, _ := audio.GetDuration(audioPath)

	return &Result{
		Segments:            segments,
		Text:                joinSegmentText(segments),
		Language:            language,
		LanguageProbability: confidence,
		Duration:            duration,
	}, nil
}

// transcribes a single chunk and adjusts timestamps
func (t *GeminiTranscriber) TranscribeChunk(ctx context.Context, chunk audio.ChunkInfo) ([]subtitle.Segment, error) {
	result, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, err
	}

	// adjust timestamps based on chunk offset
	offset := chunk.StartTime.Seconds()
	adjustedSegments := make([]subtitle.Segment, len(result.Segments))
	for i, seg := range result.Segments {
		adjustedSegments[i] = subtitle.Segment{
			Start: seg.Start + offset,
			End:   seg.End + offset,
			Text:  seg.Text,
		}
	}

	return adjustedSegments, nil
}

// holds the result of transcribing a chunk
type chunkResult struct {
	Index    int
	Segments []subtitle.Segment
	Error    error
}

// transcribes multiple chunks in parallel
func (t *GeminiTranscriber) TranscribeWithChunks(ctx context.Context, chunks []audio.ChunkInfo, concurrency int) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	workChan := make(chan audio.ChunkInfo, len(chunks))
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for chunk := range workChan {
				segments, err := t.TranscribeChunk(ctx, chunk)
				resultChan <- chunkResult{
					Index:    chunk.Index,
					Segments: segments,
					Error:    err,
				}
			}
		})
	}

	for _, chunk := range chunks {
		workChan <- chunk
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	for result := range resultChan {
		if result.Error != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
		}
		results = append(results, result)
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	// merge
	var allSegments []subtitle.Segment
	for _, r := range results {
		allSegments = append(allSegments, r.Segments...)
	}

	// Calculate total duration from last chunk
	var totalDuration time.Duration
	if len(chunks) > 0 {
		totalDuration = chunks[len(chunks)-1].EndTime
	}

	return &Result{
		Segments: allSegments,
		Text:     joinSegmentText(allSegments),
		Language: t.options.Language,
		Duration: totalDuration,
	}, nil
}

// creates the prompt for transcription
func (t *GeminiTranscriber) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a detailed transcript of this audio. ")
	sb.WriteString("For each sentence or phrase, provide the start timestamp, end timestamp, and the exact text spoken. ")
	sb.WriteString("Format your response as a JSON array with objects containing 'start', 'end', and 'text' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")

	if t.options.DetectLanguage() {
		sb.WriteString("Also detect the spoken language. ")
		sb.WriteString("In that case wrap your response in a JSON object with 'language' (ISO 639-1 code), ")
		sb.WriteString("'confidence' (a number between 0 and 1), and 'segments' (the array described above). ")
	} else if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.TranscriptLanguage != "" && t.options.TranscriptLanguage != "native" {
		sb.WriteString(fmt.Sprintf("Output the transcript in %s. ", t.options.TranscriptLanguage))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON, no other text or markdown formatting.")

	return sb.String()
}

// parses Gemini's response into segments plus the detected language,
// if one was reported
func (t *GeminiTranscriber) parseTranscriptionResponse(
	result *genai.GenerateContentResponse,
) ([]subtitle.Segment, string, float64, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, "", 0, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return nil, "", 0, fmt.Errorf("no text in Gemini response")
	}

	transcriptSegments, err := extractTranscriptSegments(responseText)
	if err != nil {
		return nil, "", 0, err
	}

	language, confidence := extractDetectedLanguage(responseText)

	// convert to subtitle segments
	segments := make([]subtitle.Segment, len(transcriptSegments))
	for i, ts := range transcriptSegments {
		segments[i] = subtitle.Segment{
			Start: ts.Start,
			End:   ts.End,
			Text:  strings.TrimSpace(ts.Text),
		}
	}

	return segments, language, confidence, nil
}

// keys under which models tend to nest the segment array
var segmentWrapperKeys = []string{"segments", "transcript", "data", "items", "results"}

// extractTranscriptSegments digs a segment array out of a model
// response. Models do not always return the bare array they were
// asked for: the JSON may be wrapped in prose, nested under a wrapper
// object, or preceded by unrelated JSON. Scan for every plausible
// JSON start and take the first candidate that validates.
func extractTranscriptSegments(text string) ([]transcriptSegment, error) {
	cleaned := fixInvalidEscapes(cleanJSONResponse(text))

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '[' && cleaned[i] != '{' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(cleaned[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}

		if segments, ok := tryExtractSegments(raw); ok {
			return segments, nil
		}
	}

	return nil, fmt.Errorf(
		"no transcript segments found in response: %s",
		truncateString(text, 200),
	)
}

// tryExtractSegments attempts to read a raw JSON value as a segment
// array, directly or nested under a wrapper object
func tryExtractSegments(raw json.RawMessage) ([]transcriptSegment, bool) {
	var segments []transcriptSegment
	if err := json.Unmarshal(raw, &segments); err == nil {
		if validateSegments(segments) {
			return segments, true
		}
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	// known wrapper keys first, then anything else
	for _, key := range segmentWrapperKeys {
		if inner, ok := wrapper[key]; ok {
			if segments, ok := tryExtractSegments(inner); ok {
				return segments, true
			}
		}
	}
	for _, inner := range wrapper {
		if segments, ok := tryExtractSegments(inner); ok {
			return segments, true
		}
	}

	return nil, false
}

// validateSegments reports whether parsed segments carry any actual
// content, to reject arrays of unrelated objects that happened to
// unmarshal cleanly
func validateSegments(segments []transcriptSegment) bool {
	if len(segments) == 0 {
		return false
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) != "" || seg.Start != 0 || seg.End != 0 {
			return true
		}
	}
	return false
}

// extractDetectedLanguage reads language and confidence from a
// detection envelope, when the response carries one
func extractDetectedLanguage(text string) (string, float64) {
	cleaned := fixInvalidEscapes(cleanJSONResponse(text))

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] != '{' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(cleaned[i:]))
		var envelope transcriptEnvelope
		if err := decoder.Decode(&envelope); err != nil {
			continue
		}
		if envelope.Language != "" {
			return envelope.Language, envelope.Confidence
		}
	}

	return "", 0
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	// remove ```json and ``` markers
	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// fixInvalidEscapes doubles backslashes that do not start a valid
// JSON escape sequence. Models occasionally emit sequences like \N
// inside string values, which the stdlib decoder rejects outright.
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
				// Valid escape, keep as-is
				result.WriteByte(s[i])
				result.WriteByte(s[i+1])
				i += 2
			default:
				// Invalid escape like \N - escape the backslash
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

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Close closes the Gemini client
func (t *GeminiTranscriber) Close() error {
	// The genai client doesn't have a Close method in the current SDK
	// but we include this for future compatibility
	return nil
}
