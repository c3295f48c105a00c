package chapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatYouTubeTimestamp renders seconds the way YouTube chapter
// descriptions expect: M:SS below one hour, H:MM:SS from there on.
func FormatYouTubeTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatYouTube renders the chapter list in the line format YouTube
// parses out of video descriptions.
func FormatYouTube(chapters []Chapter) string {
	lines := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		lines = append(lines, fmt.Sprintf("%s %s", ch.Timestamp, ch.Title))
	}
	return strings.Join(lines, "\n")
}

// YouTubePath derives the description file path from the video base
// name.
func YouTubePath(outputDir, videoPath string) string {
	return chapterPath(outputDir, videoPath, "_chapters_youtube.txt")
}

// DetailedPath derives the analysis file path from the video base
// name.
func DetailedPath(outputDir, videoPath string) string {
	return chapterPath(outputDir, videoPath, "_chapters_detailed.txt")
}

func chapterPath(outputDir, videoPath, suffix string) string {
	base := strings.TrimSuffix(
		filepath.Base(videoPath),
		filepath.Ext(videoPath),
	)
	return filepath.Join(outputDir, base+suffix)
}

// WriteYouTubeFile writes the copy-paste chapter file for a video
// description.
func WriteYouTubeFile(summary *Summary, path string) error {
	var sb strings.Builder
	sb.WriteString("YouTube Chapters (copy to video description):\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(FormatYouTube(summary.Chapters))
	sb.WriteString("\n\n")
	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Copy the timestamps above\n")
	sb.WriteString("2. Paste into your YouTube video description\n")
	sb.WriteString("3. YouTube will automatically create chapter markers\n")

	return writeFile(path, sb.String())
}

// WriteDetailedFile writes the full analysis with per chapter scores
// and keywords.
func WriteDetailedFile(summary *Summary, path string) error {
	var sb strings.Builder
	sb.WriteString("Detailed Chapter Analysis\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(fmt.Sprintf("Total Chapters: %d\n", len(summary.Chapters)))
	sb.WriteString(fmt.Sprintf(
		"Total Duration: %s\n\n",
		FormatYouTubeTimestamp(summary.TotalDuration),
	))

	for i, ch := range summary.Chapters {
		sb.WriteString(fmt.Sprintf("Chapter %d: %s\n", i+1, ch.Title))
		sb.WriteString(fmt.Sprintf("  Timestamp: %s\n", ch.Timestamp))
		sb.WriteString(fmt.Sprintf("  Topic Change Score: %.3f\n", ch.Score))
		if len(ch.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf(
				"  Keywords: %s\n",
				strings.Join(ch.Keywords, ", "),
			))
		}
		sb.WriteString("\n")
	}

	return writeFile(path, sb.String())
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
