package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/untertitel/untertitel/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and subtitle new videos automatically",
	Long: `Watch a directory for newly created video files and run the subtitle
pipeline on each one.

Files are picked up once they have finished being written and are
processed one at a time. Stop with Ctrl-C.

Examples:
  untertitel watch recordings/
  untertitel watch recordings/ --keywords --chapters
  untertitel watch inbox/ -l auto`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addPipelineFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := pipelineOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	if opts.OutputPath != "" {
		return fmt.Errorf(
			"--output cannot be used with watch: subtitles go to the output directory %s",
			opts.OutputDir,
		)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	handler := func(ctx context.Context, videoPath string) error {
		result, err := runPipeline(ctx, videoPath, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Subtitles generated: %s\n", result.OutputPath)
		return nil
	}

	watcher, err := watch.New(args[0], handler, logger)
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
