package batch

import (
	"context"
	"fmt"
)

// ProcessFunc runs the pipeline for one video and returns the path of
// the subtitle file it wrote.
type ProcessFunc func(ctx context.Context, videoPath string) (string, error)

// Result of processing one file.
type Result struct {
	Path   string
	Output string
	Err    error
}

// Summary aggregates the results of a batch run.
type Summary struct {
	Results []Result
}

// Run processes the files one at a time in order. A failing file is
// recorded and the batch moves on; cancellation stops between files
// and returns the partial summary.
func Run(
	ctx context.Context,
	files []string,
	process ProcessFunc,
) (*Summary, error) {
	summary := &Summary{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		output, err := process(ctx, file)
		summary.Results = append(summary.Results, Result{
			Path:   file,
			Output: output,
			Err:    err,
		})
	}

	return summary, nil
}

func (s *Summary) Succeeded() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Err == nil {
			out = append(out, r)
		}
	}
	return out
}

func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// SuccessRate renders like "66.7% (2/3)".
func (s *Summary) SuccessRate() string {
	total := len(s.Results)
	if total == 0 {
		return "0.0% (0/0)"
	}
	ok := len(s.Succeeded())
	return fmt.Sprintf("%.1f%% (%d/%d)", float64(ok)/float64(total)*100, ok, total)
}
