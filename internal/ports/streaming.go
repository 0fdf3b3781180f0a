package ports

import (
	"context"
	"io"

	"github.com/baditaflorin/go_wordlist_check/internal/core/domain"
)

// LineHandler classifies and normalizes one raw line.
type LineHandler interface {
	HandleLine(number int, raw string) (domain.Line, error)
}

// LineProcessor drives a LineHandler over every line of a stream.
// A nil writer processes the input without producing output.
type LineProcessor interface {
	ProcessLines(ctx context.Context, reader io.Reader, writer io.Writer) (domain.Stats, error)
}
