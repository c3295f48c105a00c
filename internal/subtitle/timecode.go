package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var timestampRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)

// DurationFromSeconds converts a floating point second count to a
// duration with millisecond precision. Fractional milliseconds round
// half up, so 0.9999s becomes a full second rather than 999ms.
// Negative inputs clamp to zero; timestamps never run backwards past
// the start of the track.
func DurationFromSeconds(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	millis := int64(seconds*1000 + 0.5)
	return time.Duration(millis) * time.Millisecond
}

// FormatTimestamp renders a duration as an SRT timestamp,
// HH:MM:SS,mmm. Hours are zero padded to two digits and simply grow
// wider past 99 hours. Negative durations clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	millis := d.Milliseconds()

	hours := millis / 3600000
	minutes := (millis / 60000) % 60
	seconds := (millis / 1000) % 60
	ms := millis % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// FormatSeconds renders a second count directly as an SRT timestamp.
func FormatSeconds(seconds float64) string {
	return FormatTimestamp(DurationFromSeconds(seconds))
}

// ParseTimestamp parses an SRT timestamp back into a duration. It
// accepts hour fields wider than two digits so timestamps produced by
// FormatTimestamp always round-trip.
func ParseTimestamp(s string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid timestamp: %q", s)
	}

	h, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp: %q: %w", s, err)
	}
	m, _ := strconv.ParseInt(matches[2], 10, 64)
	sec, _ := strconv.ParseInt(matches[3], 10, 64)
	ms, _ := strconv.ParseInt(matches[4], 10, 64)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
