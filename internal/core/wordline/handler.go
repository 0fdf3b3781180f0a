// Package wordline implements the per-line rules of the wordlist format:
// blank lines become empty, comments are trimmed, word lines are validated
// and title-cased.
package wordline

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_wordlist_check/internal/core/domain"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// CommentPrefix marks a comment line once leading whitespace is removed.
const CommentPrefix = "#"

// Config holds the per-run rules applied to word lines.
type Config struct {
	// RejectDuplicates fails the run when a title-cased word repeats.
	RejectDuplicates bool
	// UnicodeNormalization converts words to NFC before validation.
	UnicodeNormalization bool
}

// DefaultConfig returns the default rules.
func DefaultConfig() Config {
	return Config{
		RejectDuplicates:     false,
		UnicodeNormalization: true,
	}
}

// Handler applies the wordlist rules to lines of a single run.
// It is not safe for concurrent use; create one per run.
type Handler struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer

	// seen maps a normalized word to the line it first appeared on.
	seen map[string]int
}

// NewHandler creates a new line handler.
func NewHandler(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Handler, error) {
	if logger == nil {
		return nil, errors.New("wordline: logger is required")
	}
	if normalizer == nil {
		return nil, errors.New("wordline: normalizer is required")
	}

	h := &Handler{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}
	if config.RejectDuplicates {
		h.seen = make(map[string]int)
	}
	return h, nil
}

// Classify returns the kind of an already trimmed line.
func Classify(trimmed string) domain.LineKind {
	switch {
	case trimmed == "":
		return domain.KindBlank
	case strings.HasPrefix(trimmed, CommentPrefix):
		return domain.KindComment
	default:
		return domain.KindWord
	}
}

// Validate checks that every character of word is a letter.
func Validate(number int, word string) error {
	column := 0
	for _, r := range word {
		column++
		if !unicode.IsLetter(r) {
			return &domain.ValidationError{
				Line:    number,
				Content: word,
				Char:    r,
				Column:  column,
			}
		}
	}
	return nil
}

// HandleLine classifies raw and returns its normalized form.
func (h *Handler) HandleLine(number int, raw string) (domain.Line, error) {
	trimmed := strings.TrimSpace(raw)
	line := domain.Line{
		Number: number,
		Raw:    raw,
		Kind:   Classify(trimmed),
	}

	switch line.Kind {
	case domain.KindBlank:
		line.Output = ""
	case domain.KindComment:
		line.Output = trimmed
	case domain.KindWord:
		word, err := h.normalizeWord(number, trimmed)
		if err != nil {
			return domain.Line{}, err
		}
		line.Output = word
	}

	return line, nil
}

func (h *Handler) normalizeWord(number int, trimmed string) (string, error) {
	word := trimmed
	var err error
	if h.config.UnicodeNormalization {
		word, err = composeAndValidate(number, trimmed)
	} else {
		err = Validate(number, trimmed)
	}
	if err != nil {
		h.logger.Debug("Rejected word line", "line", number, "content", trimmed)
		return "", err
	}

	normalized := h.normalizer.Normalize(word)

	if h.seen != nil {
		if first, ok := h.seen[normalized]; ok {
			return "", &domain.DuplicateWordError{
				Line:      number,
				Word:      normalized,
				FirstLine: first,
			}
		}
		h.seen[normalized] = number
	}

	return normalized, nil
}

// composeAndValidate converts word to NFC and checks that every composed
// character is a letter. Errors carry word as read, with the column of the
// offending character in word.
func composeAndValidate(number int, word string) (string, error) {
	var it norm.Iter
	it.InitString(norm.NFC, word)

	var sb strings.Builder
	sb.Grow(len(word))
	for !it.Done() {
		start := it.Pos()
		segment := string(it.Next())
		verbatim := segment == word[start:it.Pos()]

		offset := 0
		for _, r := range segment {
			if !unicode.IsLetter(r) {
				column := utf8.RuneCountInString(word[:start]) + 1
				if verbatim {
					column += offset
				}
				return "", &domain.ValidationError{
					Line:    number,
					Content: word,
					Char:    r,
					Column:  column,
				}
			}
			offset++
		}
		sb.WriteString(segment)
	}
	return sb.String(), nil
}
