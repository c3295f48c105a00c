package subtitle

import (
	"time"
)

// represents transcribed audio segment with times in seconds
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// represents complete subtitle track
type Subtitle struct {
	Entries  []Entry
	Language string
	Format   string
}

type Format string

const FormatSRT Format = "srt"

// interface for subtitle generation
type Generator interface {
	Generate(segments []Segment) (*Subtitle, error)
}

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}
