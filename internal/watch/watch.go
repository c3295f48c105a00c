package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/untertitel/untertitel/internal/audio"
	"github.com/untertitel/untertitel/internal/logging"
)

// Handler processes a newly detected video file.
type Handler func(ctx context.Context, videoPath string) error

const (
	defaultSettleInterval = 500 * time.Millisecond
	defaultSettleChecks   = 2
	defaultSettleTimeout  = 2 * time.Minute
)

// Watcher monitors a directory for newly created video files and feeds
// each one to a handler. Files are processed one at a time, in the
// order their create events arrive.
type Watcher struct {
	dir     string
	handler Handler
	log     *logging.Logger
	fsw     *fsnotify.Watcher

	settleInterval time.Duration
	settleChecks   int
	settleTimeout  time.Duration
}

// New creates a watcher on dir. The directory must already exist.
func New(dir string, handler Handler, log *logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.NewNop()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:            dir,
		handler:        handler,
		log:            log,
		fsw:            fsw,
		settleInterval: defaultSettleInterval,
		settleChecks:   defaultSettleChecks,
		settleTimeout:  defaultSettleTimeout,
	}, nil
}

// Run blocks, processing create events until the context is cancelled
// or the watcher fails. It always returns a non-nil error.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.log.Infow("watching for new videos", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.log.Infow("watch stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			if !audio.IsVideoFile(event.Name) {
				w.log.Debugw("ignoring non-video file", "path", event.Name)
				continue
			}
			w.handleCreate(ctx, event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			w.log.Warnw("watch error", "error", err)
		}
	}
}

// handleCreate waits for the file to finish being written, then runs
// the handler. Failures are logged so one bad file does not stop the
// watch loop.
func (w *Watcher) handleCreate(ctx context.Context, path string) {
	if err := w.waitSettle(ctx, path); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Warnw("skipping unsettled file", "path", path, "error", err)
		return
	}

	w.log.Infow("new video detected", "path", path)

	if err := w.handler(ctx, path); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Errorw("processing failed", "path", path, "error", err)
	}
}

// waitSettle polls the file size until it stays unchanged for a few
// checks. A video being copied into the directory grows between polls,
// so this keeps half-written files out of the pipeline.
func (w *Watcher) waitSettle(ctx context.Context, path string) error {
	deadline := time.Now().Add(w.settleTimeout)
	lastSize := int64(-1)
	stable := 0

	ticker := time.NewTicker(w.settleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return fmt.Errorf("file did not settle within %s", w.settleTimeout)
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if info.Size() > 0 && info.Size() == lastSize {
				stable++
				if stable >= w.settleChecks {
					return nil
				}
				continue
			}
			stable = 0
			lastSize = info.Size()
		}
	}
}
