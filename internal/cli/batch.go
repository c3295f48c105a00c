package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Generate subtitles for multiple videos",
	Long: `Generate subtitles for multiple video files in one run.

Paths may be individual files, directories, or glob patterns. Directories
are scanned for video files, recursively with --recursive. The files are
processed strictly one after another; a failure on one file does not stop
the rest of the batch.

Examples:
  untertitel batch videos/
  untertitel batch videos/ --recursive --yes
  untertitel batch "recordings/*.mp4" lecture.mkv
  untertitel batch videos/ --keywords --chapters`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addPipelineFlags(batchCmd)

	batchCmd.Flags().
		BoolP("recursive", "r", false, "Scan directories recursively")
	batchCmd.Flags().
		BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runBatch(cmd *cobra.Command, args []string) error {
	opts, err := pipelineOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	if opts.OutputPath != "" {
		return fmt.Errorf(
			"--output cannot be used with batch: subtitles go to the output directory %s",
			opts.OutputDir,
		)
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	yes, _ := cmd.Flags().GetBool("yes")

	videos, skipped := batch.FindVideos(args, recursive)
	for _, path := range skipped {
		logger.Warnw("Skipping path",
			"path", path,
		)
	}
	if len(videos) == 0 {
		return fmt.Errorf("no video files found")
	}

	fmt.Printf("Found %d video files:\n", len(videos))
	for _, path := range videos {
		fmt.Printf("  %s\n", path)
	}
	fmt.Printf("Total size: %s\n", batch.FormatSize(batch.TotalSize(videos)))
	fmt.Printf("Estimated time: %s\n", batch.EstimateTime(videos))

	if !yes && !confirm("Process these files?") {
		fmt.Println("Aborted.")
		return nil
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	summary, runErr := batch.Run(
		ctx,
		videos,
		func(ctx context.Context, videoPath string) (string, error) {
			result, err := runPipeline(ctx, videoPath, opts)
			if err != nil {
				return "", err
			}
			return result.OutputPath, nil
		},
	)

	printBatchSummary(summary)

	if runErr != nil {
		return fmt.Errorf("batch interrupted: %w", runErr)
	}
	if len(summary.Succeeded()) == 0 {
		return fmt.Errorf("all %d files failed", len(summary.Results))
	}
	return nil
}

func printBatchSummary(summary *batch.Summary) {
	if summary == nil || len(summary.Results) == 0 {
		return
	}

	fmt.Printf("\nBatch complete: %s\n", summary.SuccessRate())
	for _, result := range summary.Results {
		if result.Err != nil {
			fmt.Printf("  FAIL %s: %v\n", result.Path, result.Err)
		} else {
			fmt.Printf("  OK   %s -> %s\n", result.Path, result.Output)
		}
	}
}

// confirm asks on stdin, defaulting to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
