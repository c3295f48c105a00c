package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Generate subtitles for an audio or video file",
	Long: `Generate SRT subtitles for the specified audio or video file using AI
transcription.

The command accepts both audio files (mp3, wav, aac, etc.) and video files
(mp4, mkv, etc.). For video files, audio is automatically extracted before
transcription. The audio is split into chunks (default 1 minute) and
transcribed in parallel.

Pass --language auto to detect the spoken language from a short sample
before transcribing. With --keywords and --chapters the transcript is
additionally summarized into companion files next to the subtitles.

Examples:
  untertitel generate video.mp4
  untertitel generate audio.mp3 --provider gemini
  untertitel generate video.mp4 --api-key YOUR_KEY --chunk-duration 2
  untertitel generate talk.mp4 -l auto --keywords --chapters
  untertitel generate lecture.mp4 --preview --max-line-length 42`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addPipelineFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := pipelineOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	result, err := runPipeline(ctx, args[0], opts)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(result.OutputPath)
	fmt.Printf("Subtitles generated successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", result.Entries)
	fmt.Printf("  Duration: %s\n", result.Duration.String())

	return nil
}
