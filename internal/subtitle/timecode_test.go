package subtitle

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0.0, "00:00:00,000"},
		{"half second", 1.5, "00:00:01,500"},
		{"hour boundary", 3661.234, "01:01:01,234"},
		{"sub millisecond rounds up", 0.9999, "00:00:01,000"},
		{"rounds half up", 0.0005, "00:00:00,001"},
		{"truncates below half", 0.0004, "00:00:00,000"},
		{"whisper style fraction", 5.12, "00:00:05,120"},
		{"minute carry", 59.9999, "00:01:00,000"},
		{"negative clamps to zero", -1.5, "00:00:00,000"},
		{"two digit hours", 359999.999, "99:59:59,999"},
		{"hours grow past two digits", 360000.0, "100:00:00,000"},
		{"very long recording", 362401.5, "100:40:01,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSeconds(tt.seconds); got != tt.want {
				t.Errorf("FormatSeconds(%v) = %q, want %q",
					tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatSecondsShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2},\d{3}$`)

	inputs := []float64{0, 0.001, 1.5, 59.999, 60, 3599.5, 3661.234,
		86400, 359999.999, 360000, 1234567.89}
	for _, sec := range inputs {
		got := FormatSeconds(sec)
		if !shape.MatchString(got) {
			t.Errorf("FormatSeconds(%v) = %q does not match HH:MM:SS,mmm",
				sec, got)
		}
	}
}

func TestDurationFromSeconds(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    time.Duration
	}{
		{"zero", 0.0, 0},
		{"exact milliseconds", 1.5, 1500 * time.Millisecond},
		{"rounds half up", 2.0625, 2063 * time.Millisecond},
		{"no float drift", 5.12, 5120 * time.Millisecond},
		{"negative clamps to zero", -3.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationFromSeconds(tt.seconds); got != tt.want {
				t.Errorf("DurationFromSeconds(%v) = %v, want %v",
					tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{
			name:  "zero",
			input: "00:00:00,000",
			want:  0,
		},
		{
			name:  "full fields",
			input: "01:02:03,456",
			want: time.Hour + 2*time.Minute + 3*time.Second +
				456*time.Millisecond,
		},
		{
			name:  "wide hour field",
			input: "123:00:00,001",
			want:  123*time.Hour + time.Millisecond,
		},
		{
			name:    "missing millis",
			input:   "00:00:00",
			wantErr: true,
		},
		{
			name:    "dot separator",
			input:   "00:00:00.000",
			wantErr: true,
		},
		{
			name:    "single digit hour",
			input:   "1:02:03,456",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimestamp(%q): expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	inputs := []float64{0, 0.001, 1.5, 5.12, 59.999, 3661.234,
		7322.007, 360000, 362401.5}

	for _, sec := range inputs {
		formatted := FormatSeconds(sec)
		parsed, err := ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", formatted, err)
		}
		if got := FormatTimestamp(parsed); got != formatted {
			t.Errorf("round trip for %v: %q -> %q", sec, formatted, got)
		}
	}
}
