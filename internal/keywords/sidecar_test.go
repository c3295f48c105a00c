package keywords

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		name      string
		outputDir string
		videoPath string
		want      string
	}{
		{
			name:      "plain video",
			outputDir: "output",
			videoPath: "talk.mp4",
			want:      filepath.Join("output", "talk_keywords.txt"),
		},
		{
			name:      "video in nested directory",
			outputDir: "out",
			videoPath: "/media/recordings/lecture_01.mkv",
			want:      filepath.Join("out", "lecture_01_keywords.txt"),
		},
		{
			name:      "dots in base name",
			outputDir: ".",
			videoPath: "my.video.v2.mp4",
			want:      "my.video.v2_keywords.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SidecarPath(tt.outputDir, tt.videoPath); got != tt.want {
				t.Errorf("SidecarPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSidecar(t *testing.T) {
	keywords := []Keyword{
		{Phrase: "machine learning", Score: 0.95},
		{Phrase: "neural networks", Score: 0.812},
		{Phrase: "golang", Score: 0.5},
	}

	got := FormatSidecar(keywords)
	want := "# Extracted Keywords\n\n" +
		"- machine learning (Score: 0.950)\n" +
		"- neural networks (Score: 0.812)\n" +
		"- golang (Score: 0.500)\n"

	if got != want {
		t.Errorf("FormatSidecar() = %q, want %q", got, want)
	}
}

func TestFormatSidecarEmpty(t *testing.T) {
	got := FormatSidecar(nil)
	want := "# Extracted Keywords\n\n"

	if got != want {
		t.Errorf("FormatSidecar(nil) = %q, want %q", got, want)
	}
}

func TestWriteSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "talk_keywords.txt")

	keywords := []Keyword{
		{Phrase: "containers", Score: 0.9},
	}

	if err := WriteSidecar(keywords, path); err != nil {
		t.Fatalf("WriteSidecar error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sidecar: %v", err)
	}

	want := "# Extracted Keywords\n\n- containers (Score: 0.900)\n"
	if string(data) != want {
		t.Errorf("sidecar content = %q, want %q", string(data), want)
	}
}
