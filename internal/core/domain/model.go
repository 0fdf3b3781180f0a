package domain

import "time"

// LineKind classifies a single wordlist line.
type LineKind int

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank LineKind = iota
	// KindComment is a line whose first non-whitespace character is '#'.
	KindComment
	// KindWord is a line holding exactly one candidate word.
	KindWord
)

// String returns the lower-case name of the kind.
func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindWord:
		return "word"
	default:
		return "unknown"
	}
}

// LineEnding is the terminator that ended a raw input line.
type LineEnding int

const (
	// EndingLF is a "\n" terminator, the only one ever written.
	EndingLF LineEnding = iota
	// EndingCRLF is a "\r\n" terminator.
	EndingCRLF
	// EndingCR is a lone "\r" terminator.
	EndingCR
	// EndingNone marks a final line cut off by end of input.
	EndingNone
)

// Line is the outcome of processing one raw input line.
type Line struct {
	// Number is the 1-based position of the line in its input.
	Number int
	// Raw is the line as read, without its terminator.
	Raw string
	// Kind is the classification of the trimmed line.
	Kind LineKind
	// Output is the normalized form written in place of Raw.
	Output string
	// Ending is the terminator Raw was read with. Output is always
	// written followed by LF.
	Ending LineEnding
}

// Changed reports whether rewriting the line would alter its bytes,
// terminator included.
func (l Line) Changed() bool {
	return l.Output != l.Raw || l.Ending != EndingLF
}

// Stats summarizes a processing run. On failure it covers the lines
// handled before the failing one.
type Stats struct {
	Lines     int
	Blank     int
	Comments  int
	Words     int
	Changed   int
	BytesRead int64
	Duration  time.Duration
}

// Add records a processed line.
func (s *Stats) Add(line Line) {
	s.Lines++
	switch line.Kind {
	case KindBlank:
		s.Blank++
	case KindComment:
		s.Comments++
	case KindWord:
		s.Words++
	}
	if line.Changed() {
		s.Changed++
	}
}
