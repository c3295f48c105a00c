package chapters

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/untertitel/untertitel/internal/keywords"
	"github.com/untertitel/untertitel/internal/subtitle"
)

// Window is a span of consecutive cues merged for topic analysis.
type Window struct {
	Start float64 // seconds
	End   float64
	Text  string
}

// Chapter is one marker in the generated chapter list.
type Chapter struct {
	Title     string
	Start     float64 // seconds
	Timestamp string  // YouTube description format
	Keywords  []string
	Score     float64 // similarity to the previous window; 1.0 for the opener
}

// Summary is the full result of a chapter analysis run.
type Summary struct {
	Chapters      []Chapter
	Windows       int
	TotalDuration float64 // seconds, end of the last window
	Warnings      []string
}

type Options struct {
	WindowSeconds       float64 // transcript span grouped per window
	KeywordsPerWindow   int
	PercentileThreshold float64 // similarity percentile that marks a boundary
}

func DefaultOptions() Options {
	return Options{
		WindowSeconds:       90,
		KeywordsPerWindow:   5,
		PercentileThreshold: 25,
	}
}

// Generator derives chapter markers from subtitle cues. The extractor
// supplies per window keywords for titles and may be nil, in which
// case titles fall back to content heuristics alone.
type Generator struct {
	extractor keywords.Extractor
	options   Options
}

func NewGenerator(extractor keywords.Extractor, opts Options) *Generator {
	defaults := DefaultOptions()
	if opts.WindowSeconds <= 0 {
		opts.WindowSeconds = defaults.WindowSeconds
	}
	if opts.KeywordsPerWindow <= 0 {
		opts.KeywordsPerWindow = defaults.KeywordsPerWindow
	}
	if opts.PercentileThreshold <= 0 {
		opts.PercentileThreshold = defaults.PercentileThreshold
	}
	return &Generator{
		extractor: extractor,
		options:   opts,
	}
}

// Generate analyzes subtitle cues and returns chapter markers. A
// failed keyword extraction degrades that window's title instead of
// failing the run; such failures surface in Summary.Warnings.
func (g *Generator) Generate(
	ctx context.Context,
	entries []subtitle.Entry,
) (*Summary, error) {
	summary := &Summary{}

	windows := BuildWindows(entries, g.options.WindowSeconds)
	if len(windows) == 0 {
		return summary, nil
	}
	summary.Windows = len(windows)
	summary.TotalDuration = windows[len(windows)-1].End

	windowKeywords, err := g.extractKeywords(ctx, windows, summary)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(windows))
	for i, win := range windows {
		texts[i] = win.Text
	}
	starts, scores := detectTopicChanges(texts, g.options.PercentileThreshold)

	for i, win := range windows {
		if !starts[i] {
			continue
		}
		phrases := topPhrases(windowKeywords[i], 3)
		summary.Chapters = append(summary.Chapters, Chapter{
			Title:     chapterTitle(phrases, win.Text),
			Start:     win.Start,
			Timestamp: FormatYouTubeTimestamp(win.Start),
			Keywords:  phrases,
			Score:     scores[i],
		})
	}

	return summary, nil
}

// BuildWindows groups cues into spans of roughly windowSeconds. A new
// window opens once a cue starts that far after the current window
// opened; each window ends where its last cue ends.
func BuildWindows(entries []subtitle.Entry, windowSeconds float64) []Window {
	if len(entries) == 0 {
		return nil
	}

	var windows []Window
	var texts []string
	start := entries[0].StartTime.Seconds()
	var end float64

	for _, entry := range entries {
		s := entry.StartTime.Seconds()
		if len(texts) > 0 && s-start >= windowSeconds {
			windows = append(windows, Window{
				Start: start,
				End:   end,
				Text:  strings.Join(texts, " "),
			})
			texts = nil
			start = s
		}
		texts = append(texts, entry.Text)
		end = entry.EndTime.Seconds()
	}

	if len(texts) > 0 {
		windows = append(windows, Window{
			Start: start,
			End:   end,
			Text:  strings.Join(texts, " "),
		})
	}

	return windows
}

func (g *Generator) extractKeywords(
	ctx context.Context,
	windows []Window,
	summary *Summary,
) ([][]keywords.Keyword, error) {
	perWindow := make([][]keywords.Keyword, len(windows))
	if g.extractor == nil {
		return perWindow, nil
	}

	for i, win := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kws, err := g.extractor.Extract(
			ctx,
			win.Text,
			g.options.KeywordsPerWindow,
		)
		if err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf(
				"keyword extraction failed for window %d: %v", i+1, err,
			))
			continue
		}
		perWindow[i] = kws
	}

	return perWindow, nil
}

// detectTopicChanges flags the windows that open a chapter. The first
// window always does. A later window opens one when its similarity to
// the previous window falls below the given percentile of all
// consecutive similarities. When the texts cannot be vectorized at
// all, every third window becomes a boundary with a flat 0.5 score.
func detectTopicChanges(
	texts []string,
	percentileThreshold float64,
) ([]bool, []float64) {
	starts := make([]bool, len(texts))
	scores := make([]float64, len(texts))
	if len(texts) == 0 {
		return starts, scores
	}

	starts[0] = true
	scores[0] = 1.0
	if len(texts) < 2 {
		return starts, scores
	}

	sims, err := consecutiveSimilarities(texts)
	if err != nil {
		for i := range texts {
			starts[i] = i%3 == 0
			scores[i] = 0.5
		}
		return starts, scores
	}

	threshold := percentile(sims, percentileThreshold)
	for i, sim := range sims {
		starts[i+1] = sim < threshold
		scores[i+1] = sim
	}

	return starts, scores
}

func topPhrases(kws []keywords.Keyword, n int) []string {
	var phrases []string
	for _, kw := range kws {
		if len(phrases) >= n {
			break
		}
		phrases = append(phrases, kw.Phrase)
	}
	return phrases
}

var (
	introWords      = []string{"introduction", "intro", "overview", "beginning"}
	conclusionWords = []string{"conclusion", "summary", "recap", "ending"}
	questionWords   = []string{"question", "questions", "q&a", "discussion"}

	punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// chapterTitle builds a title from the window content and its
// keywords. Common lecture patterns win over keywords.
func chapterTitle(phrases []string, text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, introWords):
		return "Introduction"
	case containsAny(lower, conclusionWords):
		return "Conclusion"
	case containsAny(lower, questionWords):
		return "Questions & Discussion"
	}

	caser := cases.Title(language.Und)
	var clean []string
	for _, phrase := range phrases {
		cleaned := caser.String(punctuationRegex.ReplaceAllString(phrase, ""))
		cleaned = strings.TrimSpace(cleaned)
		if utf8.RuneCountInString(cleaned) > 2 {
			clean = append(clean, cleaned)
		}
	}

	switch {
	case len(clean) == 1:
		return clean[0]
	case len(clean) >= 2:
		return clean[0] + " & " + clean[1]
	}

	return "New Topic"
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
