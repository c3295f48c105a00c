package transcribe

import (
	"testing"
)

func TestAnalyzeDetection(t *testing.T) {
	tests := []struct {
		name               string
		language           string
		confidence         float64
		wantCode           string
		wantName           string
		wantLevel          ConfidenceLevel
		wantRecommendation string
	}{
		{
			name:               "high confidence",
			language:           "de",
			confidence:         0.95,
			wantCode:           "de",
			wantName:           "German",
			wantLevel:          ConfidenceHigh,
			wantRecommendation: "proceed",
		},
		{
			name:               "high confidence boundary",
			language:           "en",
			confidence:         0.8,
			wantCode:           "en",
			wantName:           "English",
			wantLevel:          ConfidenceHigh,
			wantRecommendation: "proceed",
		},
		{
			name:               "medium confidence",
			language:           "fr",
			confidence:         0.6,
			wantCode:           "fr",
			wantName:           "French",
			wantLevel:          ConfidenceMedium,
			wantRecommendation: "proceed with caution",
		},
		{
			name:               "medium confidence boundary",
			language:           "es",
			confidence:         0.5,
			wantCode:           "es",
			wantName:           "Spanish",
			wantLevel:          ConfidenceMedium,
			wantRecommendation: "proceed with caution",
		},
		{
			name:               "low confidence",
			language:           "ja",
			confidence:         0.3,
			wantCode:           "ja",
			wantName:           "Japanese",
			wantLevel:          ConfidenceLow,
			wantRecommendation: "manual review recommended",
		},
		{
			name:               "no confidence score",
			language:           "english",
			confidence:         0,
			wantCode:           "en",
			wantName:           "English",
			wantLevel:          ConfidenceUnverified,
			wantRecommendation: "verify the detected language manually",
		},
		{
			name:               "full name from whisper",
			language:           "german",
			confidence:         0.9,
			wantCode:           "de",
			wantName:           "German",
			wantLevel:          ConfidenceHigh,
			wantRecommendation: "proceed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeDetection(tt.language, tt.confidence)
			if analysis.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", analysis.Code, tt.wantCode)
			}
			if analysis.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", analysis.Name, tt.wantName)
			}
			if analysis.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", analysis.Level, tt.wantLevel)
			}
			if analysis.Recommendation != tt.wantRecommendation {
				t.Errorf("Recommendation = %q, want %q",
					analysis.Recommendation, tt.wantRecommendation)
			}
		})
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"de", "de"},
		{"DE", "de"},
		{"german", "de"},
		{"German", "de"},
		{"english", "en"},
		{"pt", "pt"},
		{"xx", "xx"},
		{"klingon", "klingon"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeLanguageCode(tt.input); got != tt.want {
				t.Errorf("NormalizeLanguageCode(%q) = %q, want %q",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"de", "German"},
		{"en", "English"},
		{"zh", "Chinese"},
		{"xx", "XX"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := LanguageName(tt.code); got != tt.want {
				t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestOptionsDetectLanguage(t *testing.T) {
	tests := []struct {
		language string
		want     bool
	}{
		{"", true},
		{"auto", true},
		{"detect", true},
		{"de", false},
		{"en", false},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			opts := Options{Language: tt.language}
			if got := opts.DetectLanguage(); got != tt.want {
				t.Errorf("DetectLanguage() with %q = %v, want %v",
					tt.language, got, tt.want)
			}
		})
	}
}
