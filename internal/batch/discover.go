package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/untertitel/untertitel/internal/audio"
)

// FindVideos resolves files, directories and glob patterns into a
// sorted, deduplicated list of video files. Directories are scanned
// flat unless recursive is set. Named paths that do not exist or are
// not videos come back in skipped so the caller can warn about them.
func FindVideos(paths []string, recursive bool) (videos, skipped []string) {
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			videos = append(videos, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.Mode().IsRegular():
			if audio.IsVideoFile(path) {
				add(path)
			} else {
				skipped = append(skipped, path)
			}

		case err == nil && info.IsDir():
			for _, p := range scanDir(path, recursive) {
				add(p)
			}

		case strings.ContainsAny(path, "*?["):
			matches, _ := filepath.Glob(path)
			for _, m := range matches {
				mi, err := os.Stat(m)
				if err == nil && mi.Mode().IsRegular() && audio.IsVideoFile(m) {
					add(m)
				}
			}

		default:
			skipped = append(skipped, path)
		}
	}

	sort.Strings(videos)
	return videos, skipped
}

func scanDir(dir string, recursive bool) []string {
	var found []string

	if recursive {
		filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && audio.IsVideoFile(p) {
				found = append(found, p)
			}
			return nil
		})
		return found
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() && audio.IsVideoFile(e.Name()) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	return found
}

// TotalSize sums the sizes of the given files, skipping any that
// cannot be statted.
func TotalSize(files []string) int64 {
	var total int64
	for _, f := range files {
		if info, err := os.Stat(f); err == nil {
			total += info.Size()
		}
	}
	return total
}

// EstimateTime guesses total processing time from file sizes,
// roughly one minute per 100MB of input.
func EstimateTime(files []string) string {
	var total int64
	statted := 0
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		statted++
		total += info.Size()
	}
	if statted == 0 && len(files) > 0 {
		return "unknown"
	}
	return estimateFromSize(total)
}

func estimateFromSize(totalBytes int64) string {
	minutes := float64(totalBytes) / (100 * 1024 * 1024)
	switch {
	case minutes < 1:
		return "< 1 minute"
	case minutes < 60:
		return fmt.Sprintf("~%d minutes", int(minutes))
	default:
		return fmt.Sprintf("~%dh %dm", int(minutes)/60, int(minutes)%60)
	}
}

// FormatSize renders a byte count in a human readable unit.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}
