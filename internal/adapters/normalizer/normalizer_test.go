package normalizer

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNormalizers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Lower case", input: "the", expected: "The"},
		{name: "Upper case", input: "AND", expected: "And"},
		{name: "Already title case", input: "Juniper", expected: "Juniper"},
		{name: "Single letter", input: "x", expected: "X"},
		{name: "Latin-1", input: "ÉCOLE", expected: "École"},
		{name: "Greek", input: "αλφα", expected: "Αλφα"},
		{name: "Cyrillic", input: "МОСКВА", expected: "Москва"},
		{name: "Digraph title case", input: "ǆungla", expected: "ǅungla"},
		{name: "Empty", input: "", expected: ""},
	}

	factory := NewNormalizerFactory()
	normalizers := map[string]interface {
		Normalize(string) string
	}{
		"title": factory.CreateNormalizer(TitleCaseNormalizerType),
		"ascii": factory.CreateNormalizer(ASCIINormalizerType),
	}

	for nname, n := range normalizers {
		for _, tc := range tests {
			t.Run(nname+"/"+tc.name, func(t *testing.T) {
				if got := n.Normalize(tc.input); got != tc.expected {
					t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
				}
			})
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := NewASCIINormalizer(nil)
	for _, word := range []string{"hello", "WORLD", "ÉCOLE", "ǆungla", "kAnGaRoO"} {
		once := n.Normalize(word)
		if twice := n.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", word, once, twice)
		}
	}
}

func TestTitleCaseForLanguage(t *testing.T) {
	n := NewTitleCaseNormalizerForLanguage(language.Dutch)
	if got := n.Normalize("ijsland"); got != "IJsland" {
		t.Errorf("Dutch title case = %q, want %q", got, "IJsland")
	}
}

type recordingNormalizer struct{ calls int }

func (r *recordingNormalizer) Normalize(word string) string {
	r.calls++
	return word
}

func TestASCIINormalizerFallback(t *testing.T) {
	fallback := &recordingNormalizer{}
	n := NewASCIINormalizer(fallback)

	n.Normalize("plain")
	if fallback.calls != 0 {
		t.Errorf("ASCII words should not reach the fallback")
	}
	n.Normalize("naïve")
	if fallback.calls != 1 {
		t.Errorf("non-ASCII words should reach the fallback, calls = %d", fallback.calls)
	}
}
