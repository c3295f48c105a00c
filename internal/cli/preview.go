package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/preview"
	"github.com/untertitel/untertitel/internal/subtitle"
)

var previewCmd = &cobra.Command{
	Use:   "preview [subtitle_file]",
	Short: "Preview a subtitle file with quality checks",
	Long: `Show the first cues of an SRT subtitle file together with track
statistics and a quality report.

Examples:
  untertitel preview talk.srt
  untertitel preview talk.srt --count 25
  untertitel preview talk.srt --start 300 --span 60`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().
		IntP("count", "n", 10, "Number of cues to show")
	previewCmd.Flags().
		Float64("start", 0, "Only consider cues starting at or after this time in seconds")
	previewCmd.Flags().
		Float64("span", 0, "Length in seconds of the considered range (0 = to the end)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if strings.ToLower(filepath.Ext(inputPath)) != ".srt" {
		return fmt.Errorf(
			"unsupported input %q: preview needs an .srt file",
			filepath.Ext(inputPath),
		)
	}

	file, err := subtitle.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}
	entries := file.Entries()

	count, _ := cmd.Flags().GetInt("count")
	start, _ := cmd.Flags().GetFloat64("start")
	span, _ := cmd.Flags().GetFloat64("span")

	if start > 0 || span > 0 {
		if span <= 0 {
			if n := len(entries); n > 0 {
				span = entries[n-1].EndTime.Seconds() - start
			}
		}
		entries = preview.InRange(entries, start, span)
	}

	fmt.Printf("Preview: %s\n", inputPath)
	printPreview(entries, count)

	return nil
}

// printPreview renders cues, statistics and the quality report to
// stdout. Shared with generate --preview.
func printPreview(entries []subtitle.Entry, limit int) {
	report := preview.Analyze(entries)

	fmt.Printf("\nFirst cues:\n")
	for _, line := range preview.Lines(entries, limit) {
		fmt.Printf("  %3d  [%s] %-7s %s\n",
			line.Index, line.Start, line.Duration, line.Text)
	}

	fmt.Printf("\nStatistics:\n")
	fmt.Printf("  Segments: %d\n", report.Stats.Segments)
	fmt.Printf("  Total duration: %s\n",
		preview.FormatClock(report.Stats.TotalDuration))
	fmt.Printf("  Average cue duration: %.1fs\n", report.Stats.AvgDuration)
	fmt.Printf("  Average text length: %.1f chars\n", report.Stats.AvgChars)

	fmt.Printf("\nQuality checks:\n")
	for _, check := range report.Checks {
		marker := "ok"
		if !check.OK {
			marker = "!!"
		}
		fmt.Printf("  [%s] %s\n", marker, check.Message)
	}

	fmt.Printf("\n%s\n", report.Verdict)
}
