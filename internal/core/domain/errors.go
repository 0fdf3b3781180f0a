package domain

import "fmt"

// ValidationError reports a word line containing a non-letter character.
type ValidationError struct {
	// Line is the 1-based line number.
	Line int
	// Content is the trimmed line content.
	Content string
	// Char is the first offending character.
	Char rune
	// Column is the 1-based rune position of Char within Content. When Char
	// comes out of a composed sequence it is the position where that
	// sequence starts.
	Column int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: non-alphabetic character %q in word %q (column %d)",
		e.Line, e.Char, e.Content, e.Column)
}

// DuplicateWordError reports a word that already appeared earlier in the same list.
type DuplicateWordError struct {
	Line      int
	Word      string
	FirstLine int
}

func (e *DuplicateWordError) Error() string {
	return fmt.Sprintf("line %d: duplicate word %q (first seen on line %d)",
		e.Line, e.Word, e.FirstLine)
}
