package preview

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/untertitel/untertitel/internal/subtitle"
)

// Stats summarizes a subtitle track.
type Stats struct {
	Segments      int
	TotalDuration float64 // seconds, latest cue end
	AvgDuration   float64 // seconds
	AvgChars      float64
}

// Check is one line of the quality report.
type Check struct {
	OK      bool
	Message string
}

// Report is the quality analysis of a subtitle track.
type Report struct {
	Stats   Stats
	Checks  []Check
	Verdict string
}

// Line is one row of the subtitle preview.
type Line struct {
	Index    int
	Start    string // clock time MM:SS
	Duration string
	Text     string
}

// Analyze computes track statistics and flags the common quality
// problems: empty cues, a high share of sub second cues, cues that
// linger past ten seconds, and cue text that reads too short or too
// long on screen.
func Analyze(entries []subtitle.Entry) *Report {
	report := &Report{}
	if len(entries) == 0 {
		return report
	}

	var totalDuration float64
	var durationSum float64
	var totalChars int
	var empty, short, long int

	for _, entry := range entries {
		end := entry.EndTime.Seconds()
		if end > totalDuration {
			totalDuration = end
		}

		d := entry.EndTime.Seconds() - entry.StartTime.Seconds()
		durationSum += d
		if d < 1.0 {
			short++
		}
		if d > 10.0 {
			long++
		}

		totalChars += utf8.RuneCountInString(entry.Text)
		if strings.TrimSpace(entry.Text) == "" {
			empty++
		}
	}

	n := len(entries)
	report.Stats = Stats{
		Segments:      n,
		TotalDuration: totalDuration,
		AvgDuration:   durationSum / float64(n),
		AvgChars:      float64(totalChars) / float64(n),
	}

	if empty > 0 {
		report.addCheck(false, fmt.Sprintf("%d empty segments detected", empty))
	} else {
		report.addCheck(true, "No empty segments")
	}

	if float64(short) > float64(n)*0.1 {
		report.addCheck(false, fmt.Sprintf("%d very short segments (<1s)", short))
	} else {
		report.addCheck(true, "Good segment duration distribution")
	}

	if long > 0 {
		report.addCheck(false, fmt.Sprintf("%d very long segments (>10s)", long))
	} else {
		report.addCheck(true, "No overly long segments")
	}

	avgChars := report.Stats.AvgChars
	switch {
	case avgChars < 10:
		report.addCheck(false, fmt.Sprintf(
			"Average text length is short (%.1f chars)", avgChars,
		))
	case avgChars > 100:
		report.addCheck(false, fmt.Sprintf(
			"Average text length is long (%.1f chars)", avgChars,
		))
	default:
		report.addCheck(true, fmt.Sprintf(
			"Good text length (%.1f chars avg)", avgChars,
		))
	}

	var issues int
	for _, check := range report.Checks {
		if !check.OK {
			issues++
		}
	}
	switch issues {
	case 0:
		report.Verdict = "Excellent subtitle quality!"
	case 1:
		report.Verdict = "Good subtitle quality with minor issues"
	default:
		report.Verdict = "Consider reviewing subtitle quality"
	}

	return report
}

func (r *Report) addCheck(ok bool, message string) {
	r.Checks = append(r.Checks, Check{OK: ok, Message: message})
}

// Lines renders the first cues of a track for terminal display. Long
// text is cut at 60 characters and newlines flatten to spaces.
func Lines(entries []subtitle.Entry, limit int) []Line {
	if limit <= 0 {
		limit = 10
	}
	if limit > len(entries) {
		limit = len(entries)
	}

	lines := make([]Line, 0, limit)
	for _, entry := range entries[:limit] {
		d := entry.EndTime.Seconds() - entry.StartTime.Seconds()

		text := entry.Text
		if runes := []rune(text); len(runes) > 60 {
			text = string(runes[:57]) + "..."
		}
		text = strings.ReplaceAll(text, "\n", " ")

		lines = append(lines, Line{
			Index:    entry.Index,
			Start:    FormatClock(entry.StartTime.Seconds()),
			Duration: fmt.Sprintf("%.1fs", d),
			Text:     text,
		})
	}

	return lines
}

// InRange returns the cues that start inside the given time span.
func InRange(entries []subtitle.Entry, start, duration float64) []subtitle.Entry {
	end := start + duration
	var out []subtitle.Entry
	for _, entry := range entries {
		s := entry.StartTime.Seconds()
		if s >= start && s <= end {
			out = append(out, entry)
		}
	}
	return out
}

// FormatClock renders seconds as MM:SS for preview display.
func FormatClock(seconds float64) string {
	minutes := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
