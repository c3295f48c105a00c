package transcribe

import "strings"

// confidence tier of a language detection
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
	// the provider named a language but gave no score for it
	ConfidenceUnverified ConfidenceLevel = "unverified"
)

// DetectionAnalysis is language detection output in a form ready to
// show to the user.
type DetectionAnalysis struct {
	Code           string
	Name           string
	Confidence     float64
	Level          ConfidenceLevel
	Recommendation string
}

// ISO 639-1 codes for the languages speech providers commonly report
var languageNames = map[string]string{
	"en": "English",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
	"tr": "Turkish",
	"pl": "Polish",
	"nl": "Dutch",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"cs": "Czech",
	"hu": "Hungarian",
	"ro": "Romanian",
	"bg": "Bulgarian",
	"hr": "Croatian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"et": "Estonian",
	"lv": "Latvian",
	"lt": "Lithuanian",
	"uk": "Ukrainian",
	"be": "Belarusian",
	"ca": "Catalan",
	"eu": "Basque",
	"gl": "Galician",
	"cy": "Welsh",
	"ga": "Irish",
	"mt": "Maltese",
	"is": "Icelandic",
	"mk": "Macedonian",
	"sq": "Albanian",
	"af": "Afrikaans",
	"az": "Azerbaijani",
	"bn": "Bengali",
	"bs": "Bosnian",
	"fa": "Persian",
	"he": "Hebrew",
	"id": "Indonesian",
	"ka": "Georgian",
	"kk": "Kazakh",
	"lo": "Lao",
	"ml": "Malayalam",
	"mn": "Mongolian",
	"ms": "Malay",
	"my": "Myanmar",
	"ne": "Nepali",
	"si": "Sinhala",
	"sw": "Swahili",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"tl": "Tagalog",
	"ur": "Urdu",
	"uz": "Uzbek",
	"vi": "Vietnamese",
	"yo": "Yoruba",
}

// reverse lookup built from languageNames
var languageCodes = func() map[string]string {
	codes := make(map[string]string, len(languageNames))
	for code, name := range languageNames {
		codes[strings.ToLower(name)] = code
	}
	return codes
}()

// NormalizeLanguageCode maps a provider reported language to an ISO
// 639-1 code. Whisper reports full names like "german" while Gemini
// returns codes; both normalize to "de". Unknown values pass through
// lowercased.
func NormalizeLanguageCode(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return ""
	}
	if _, ok := languageNames[lang]; ok {
		return lang
	}
	if code, ok := languageCodes[lang]; ok {
		return code
	}
	return lang
}

// LanguageName returns the display name for a language code, or the
// upper cased code when it is not in the table.
func LanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "Unknown"
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}

// AnalyzeDetection grades a detected language by confidence so
// callers can decide whether to trust it. Thresholds: 0.8 and above
// is high, 0.5 and above is medium, anything reported below that is
// low. A zero confidence means the provider named a language without
// scoring it.
func AnalyzeDetection(language string, confidence float64) DetectionAnalysis {
	code := NormalizeLanguageCode(language)

	analysis := DetectionAnalysis{
		Code:       code,
		Name:       LanguageName(code),
		Confidence: confidence,
	}

	switch {
	case confidence >= 0.8:
		analysis.Level = ConfidenceHigh
		analysis.Recommendation = "proceed"
	case confidence >= 0.5:
		analysis.Level = ConfidenceMedium
		analysis.Recommendation = "proceed with caution"
	case confidence > 0:
		analysis.Level = ConfidenceLow
		analysis.Recommendation = "manual review recommended"
	default:
		analysis.Level = ConfidenceUnverified
		analysis.Recommendation = "verify the detected language manually"
	}

	return analysis
}
