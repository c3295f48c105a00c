package keywords

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SidecarPath returns the keyword file path for a video, derived
// from the video base name.
func SidecarPath(outputDir, videoPath string) string {
	base := strings.TrimSuffix(
		filepath.Base(videoPath),
		filepath.Ext(videoPath),
	)
	return filepath.Join(outputDir, base+"_keywords.txt")
}

// FormatSidecar renders keywords as the sidecar file content, one
// line per phrase in rank order.
func FormatSidecar(keywords []Keyword) string {
	var sb strings.Builder
	sb.WriteString("# Extracted Keywords\n\n")
	for _, kw := range keywords {
		sb.WriteString(fmt.Sprintf("- %s (Score: %.3f)\n", kw.Phrase, kw.Score))
	}
	return sb.String()
}

// writes the keyword sidecar file
func WriteSidecar(keywords []Keyword, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(FormatSidecar(keywords)), 0644)
}
