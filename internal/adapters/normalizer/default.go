package normalizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// TitleCaseNormalizer title-cases words using the Unicode casing tables.
type TitleCaseNormalizer struct {
	tag language.Tag
}

// NewTitleCaseNormalizer creates a title-case normalizer for the root locale.
func NewTitleCaseNormalizer() ports.Normalizer {
	return &TitleCaseNormalizer{tag: language.Und}
}

// NewTitleCaseNormalizerForLanguage creates a title-case normalizer that
// applies the casing rules of the given language (e.g. Dutch "ij").
func NewTitleCaseNormalizerForLanguage(tag language.Tag) ports.Normalizer {
	return &TitleCaseNormalizer{tag: tag}
}

// Normalize upper-cases the first letter of word and lower-cases the rest.
// A Caser keeps state, so one is built per call.
func (n *TitleCaseNormalizer) Normalize(word string) string {
	if word == "" {
		return ""
	}
	return cases.Title(n.tag).String(word)
}
