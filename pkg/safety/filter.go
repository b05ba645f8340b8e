package safety

import "strings"

// TextClassifier flags text that needs human follow-up. The keyword filter
// below is a placeholder implementation; a model-backed classifier can slot in
// behind the same interface without touching callers.
type TextClassifier interface {
	Classify(text string) bool
}

// DefaultKeywords is the crisis vocabulary matched as case-insensitive
// substrings. No stemming, no negation handling.
var DefaultKeywords = []string{
	"suicide",
	"kill myself",
	"harm myself",
	"hurt myself",
	"end my life",
	"want to die",
	"self-harm",
	"abuse",
	"violence",
	"hate",
	"murder",
}

type KeywordFilter struct {
	keywords []string
}

func NewKeywordFilter(keywords ...string) *KeywordFilter {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &KeywordFilter{keywords: keywords}
}

func (f *KeywordFilter) Classify(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range f.keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
