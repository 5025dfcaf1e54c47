package service

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// languageSet is the fixed candidate set the detector distinguishes between.
// Keeping the set fixed makes detection results stable across restarts.
var languageSet = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.Russian,
}

// LanguageGate rejects non-English input using deterministic language
// identification. Detection never errors outward: empty or non-linguistic
// input simply reports false.
type LanguageGate struct {
	detector lingua.LanguageDetector
}

// NewLanguageGate builds the detector once; it is reused across requests.
func NewLanguageGate() *LanguageGate {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languageSet...).
		WithPreloadedLanguageModels().
		Build()

	return &LanguageGate{detector: detector}
}

// IsEnglish reports whether the input is English. Fails closed: input the
// detector cannot classify yields false.
func (g *LanguageGate) IsEnglish(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	language, ok := g.detector.DetectLanguageOf(text)
	return ok && language == lingua.English
}
