package chapters

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatYouTubeTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{65, "1:05"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{7322.9, "2:02:02"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatYouTubeTimestamp(tt.seconds); got != tt.want {
				t.Errorf("FormatYouTubeTimestamp(%v) = %q, want %q",
					tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatYouTube(t *testing.T) {
	chapters := []Chapter{
		{Timestamp: "0:00", Title: "Introduction"},
		{Timestamp: "1:30", Title: "Main Topic"},
		{Timestamp: "12:45", Title: "Conclusion"},
	}

	got := FormatYouTube(chapters)
	want := "0:00 Introduction\n1:30 Main Topic\n12:45 Conclusion"
	if got != want {
		t.Errorf("FormatYouTube() = %q, want %q", got, want)
	}
}

func TestChapterPaths(t *testing.T) {
	youtube := YouTubePath("output", "/videos/talk.mp4")
	if youtube != filepath.Join("output", "talk_chapters_youtube.txt") {
		t.Errorf("YouTubePath() = %q", youtube)
	}

	detailed := DetailedPath("output", "/videos/talk.mp4")
	if detailed != filepath.Join("output", "talk_chapters_detailed.txt") {
		t.Errorf("DetailedPath() = %q", detailed)
	}
}

func TestWriteYouTubeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk_chapters_youtube.txt")

	summary := &Summary{
		Chapters: []Chapter{
			{Timestamp: "0:00", Title: "Introduction"},
			{Timestamp: "1:30", Title: "Main Topic"},
		},
	}

	if err := WriteYouTubeFile(summary, path); err != nil {
		t.Fatalf("WriteYouTubeFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chapter file: %v", err)
	}

	want := "YouTube Chapters (copy to video description):\n" +
		"==================================================\n\n" +
		"0:00 Introduction\n" +
		"1:30 Main Topic\n\n" +
		"Instructions:\n" +
		"1. Copy the timestamps above\n" +
		"2. Paste into your YouTube video description\n" +
		"3. YouTube will automatically create chapter markers\n"

	if string(data) != want {
		t.Errorf("chapter file = %q, want %q", string(data), want)
	}
}

func TestWriteDetailedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk_chapters_detailed.txt")

	summary := &Summary{
		TotalDuration: 300,
		Chapters: []Chapter{
			{
				Title:     "Introduction",
				Timestamp: "0:00",
				Score:     1.0,
				Keywords:  []string{"setup", "golang"},
			},
			{
				Title:     "Main Topic",
				Timestamp: "1:30",
				Score:     0.234,
			},
		},
	}

	if err := WriteDetailedFile(summary, path); err != nil {
		t.Fatalf("WriteDetailedFile error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading detailed file: %v", err)
	}

	want := "Detailed Chapter Analysis\n" +
		"==================================================\n\n" +
		"Total Chapters: 2\n" +
		"Total Duration: 5:00\n\n" +
		"Chapter 1: Introduction\n" +
		"  Timestamp: 0:00\n" +
		"  Topic Change Score: 1.000\n" +
		"  Keywords: setup, golang\n\n" +
		"Chapter 2: Main Topic\n" +
		"  Timestamp: 1:30\n" +
		"  Topic Change Score: 0.234\n\n"

	if string(data) != want {
		t.Errorf("detailed file = %q, want %q", string(data), want)
	}
}
