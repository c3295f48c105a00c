package subtitle

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultGenerator implements the Generator interface. The zero value
// emits one entry per segment without reflowing text, which keeps
// timing exactly as the transcriber reported it. Setting
// MaxCharsPerLine enables line wrapping and splitting of overlong
// segments.
type DefaultGenerator struct {
	MaxCharsPerLine int
	MaxLinesPerSub  int
}

func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewWrappingGenerator returns a generator that reflows text to the
// conventional 42 characters over at most two lines.
func NewWrappingGenerator() *DefaultGenerator {
	return &DefaultGenerator{
		MaxCharsPerLine: 42, // Standard subtitle line length
		MaxLinesPerSub:  2,  // Most players support 2 lines
	}
}

// converts transcription segments to subtitle entries. Segments with
// empty text are dropped and the remaining entries renumbered so the
// output indices stay contiguous. Segments whose end precedes their
// start are kept as zero length entries rather than aborting the run.
// Input order is preserved as given.
func (g *DefaultGenerator) Generate(segments []Segment) (*Subtitle, error) {
	entries := []Entry{}
	index := 1

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		start := DurationFromSeconds(seg.Start)
		end := DurationFromSeconds(seg.End)
		if end < start {
			end = start
		}

		if g.needsSplit(text) {
			splitEntries := g.splitEntry(start, end, text, index)
			entries = append(entries, splitEntries...)
			index += len(splitEntries)
		} else {
			entries = append(entries, Entry{
				Index:     index,
				StartTime: start,
				EndTime:   end,
				Text:      g.formatText(text),
			})
			index++
		}
	}

	return &Subtitle{
		Entries: entries,
		Format:  string(FormatSRT),
	}, nil
}

func (g *DefaultGenerator) needsSplit(text string) bool {
	if g.MaxCharsPerLine <= 0 {
		return false
	}
	return utf8.RuneCountInString(text) > g.MaxCharsPerLine*g.maxLines()
}

func (g *DefaultGenerator) maxLines() int {
	if g.MaxLinesPerSub <= 0 {
		return 1
	}
	return g.MaxLinesPerSub
}

// splits an overlong entry into multiple entries, distributing the
// words evenly and the time span proportionally
func (g *DefaultGenerator) splitEntry(
	start, end time.Duration,
	text string,
	startIndex int,
) []Entry {
	words := strings.Fields(text)
	totalDuration := end - start

	if len(words) == 0 {
		return nil
	}

	// approximate characters per subtitle
	maxChars := g.MaxCharsPerLine * g.maxLines()
	totalChars := utf8.RuneCountInString(text)

	numSplits := (totalChars + maxChars - 1) / maxChars
	if numSplits < 1 {
		numSplits = 1
	}

	wordsPerSplit := (len(words) + numSplits - 1) / numSplits
	durationPerSplit := totalDuration / time.Duration(numSplits)

	var entries []Entry
	currentStart := start

	for i := 0; i < numSplits && len(words) > 0; i++ {
		endIdx := wordsPerSplit
		if endIdx > len(words) {
			endIdx = len(words)
		}

		splitWords := words[:endIdx]
		words = words[endIdx:]

		splitText := strings.Join(splitWords, " ")
		currentEnd := currentStart + durationPerSplit

		// Last split should end at the original end time
		if len(words) == 0 {
			currentEnd = end
		}

		entries = append(entries, Entry{
			Index:     startIndex + i,
			StartTime: currentStart,
			EndTime:   currentEnd,
			Text:      g.formatText(splitText),
		})

		currentStart = currentEnd
	}

	return entries
}

// formatText formats text for display with line wrapping
func (g *DefaultGenerator) formatText(text string) string {
	text = strings.TrimSpace(text)
	if g.MaxCharsPerLine <= 0 {
		return text
	}

	runeCount := utf8.RuneCountInString(text)

	// if text fits on one line, return as is
	if runeCount <= g.MaxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	// find the best split point (closest to middle)
	middle := runeCount / 2
	bestSplit := 0
	bestDiff := runeCount

	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += utf8.RuneCountInString(word)
		if i > 0 {
			currentLen++ // space
		}

		diff := abs(currentLen - middle)
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	if bestSplit > 0 && bestSplit < len(words) {
		line1 := strings.Join(words[:bestSplit], " ")
		line2 := strings.Join(words[bestSplit:], " ")
		return line1 + "\n" + line2
	}

	return text
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
