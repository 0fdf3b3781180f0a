// wordlist.go
// Package wordlist validates and normalizes wordlists for the password generator.
//
// A wordlist is line oriented. Blank lines are emitted empty, lines whose
// first non-whitespace character is '#' are comments and are emitted trimmed,
// and every other line must hold exactly one word made of letters only. Words
// are emitted title-cased:
//
//	"  the  "        -> "The"
//	"# common words" -> "# common words"
//	"wi-fi"          -> *ValidationError (line 1, '-')
//
// Case is always corrected, never rejected.
package wordlist

import (
	"context"
	"io"
	"strings"

	"github.com/baditaflorin/go_wordlist_check/internal/adapters/logger"
	"github.com/baditaflorin/go_wordlist_check/internal/adapters/normalizer"
	"github.com/baditaflorin/go_wordlist_check/internal/adapters/stream/lineprocessor"
	"github.com/baditaflorin/go_wordlist_check/internal/core/domain"
	"github.com/baditaflorin/go_wordlist_check/internal/core/wordline"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
	"github.com/baditaflorin/l"
)

type (
	// Stats summarizes a run.
	Stats = domain.Stats
	// ValidationError reports a word line with a non-letter character.
	ValidationError = domain.ValidationError
	// DuplicateWordError reports a repeated word when duplicates are rejected.
	DuplicateWordError = domain.DuplicateWordError
)

// Config holds configuration options for a Checker.
type Config struct {
	RejectDuplicates     bool
	UnicodeNormalization bool
	ChunkSize            int
	// Logger for tracing runs.
	Logger ports.Logger
	// Normalizer title-cases validated words.
	Normalizer ports.Normalizer
}

// Option defines a functional option for configuring a Checker.
type Option func(*Config)

// WithRejectDuplicates fails a run when a word appears twice.
func WithRejectDuplicates(reject bool) Option {
	return func(cfg *Config) {
		cfg.RejectDuplicates = reject
	}
}

// WithUnicodeNormalization toggles NFC normalization of words before validation.
func WithUnicodeNormalization(enable bool) Option {
	return func(cfg *Config) {
		cfg.UnicodeNormalization = enable
	}
}

// WithChunkSize sets the read buffer size.
func WithChunkSize(size int) Option {
	return func(cfg *Config) {
		cfg.ChunkSize = size
	}
}

// WithLogger sets a custom l.Logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger that already implements the internal logging interface.
func WithPortsLogger(lg ports.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = lg
	}
}

// WithNormalizer sets the word normalizer.
func WithNormalizer(n ports.Normalizer) Option {
	return func(cfg *Config) {
		cfg.Normalizer = n
	}
}

// Checker validates and normalizes wordlists. It is safe for concurrent use;
// duplicate tracking is scoped to a single call.
type Checker struct {
	config Config
	// ownsLogger is set when New created the logger and Close must release it.
	ownsLogger bool
}

// New creates a new Checker with the provided functional options.
// If no logger is provided, a default stderr logger is created; Close
// releases it.
func New(opts ...Option) (*Checker, error) {
	defaults := wordline.DefaultConfig()
	cfg := Config{
		RejectDuplicates:     defaults.RejectDuplicates,
		UnicodeNormalization: defaults.UnicodeNormalization,
		ChunkSize:            lineprocessor.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ownsLogger := false
	if cfg.Logger == nil {
		lg, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		cfg.Logger = lg
		ownsLogger = true
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.ASCIINormalizerType)
	}

	return &Checker{config: cfg, ownsLogger: ownsLogger}, nil
}

// Close releases the default logger created by New. A logger passed in
// through WithLogger or WithPortsLogger stays open for its owner.
func (c *Checker) Close() error {
	if !c.ownsLogger {
		return nil
	}
	return c.config.Logger.Close()
}

func (c *Checker) newHandler() (*wordline.Handler, error) {
	return wordline.NewHandler(wordline.Config{
		RejectDuplicates:     c.config.RejectDuplicates,
		UnicodeNormalization: c.config.UnicodeNormalization,
	}, c.config.Logger, c.config.Normalizer)
}

func (c *Checker) process(ctx context.Context, handler ports.LineHandler, r io.Reader, w io.Writer) (Stats, error) {
	proc := lineprocessor.NewProcessor(c.config.Logger, handler, lineprocessor.ProcessingConfig{
		ChunkSize: c.config.ChunkSize,
	})
	return proc.ProcessLines(ctx, r, w)
}

// Check reads a wordlist from r and writes its normalized form to w.
// It stops at the first invalid line; lines before it have already been written.
func (c *Checker) Check(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	handler, err := c.newHandler()
	if err != nil {
		return Stats{}, err
	}
	return c.process(ctx, handler, r, w)
}

// Verify validates a wordlist without producing output. Stats.Changed is
// zero exactly when r is already normalized.
func (c *Checker) Verify(ctx context.Context, r io.Reader) (Stats, error) {
	return c.Check(ctx, r, nil)
}

// Words returns the normalized words of the list in order, skipping blank
// lines and comments.
func (c *Checker) Words(ctx context.Context, r io.Reader) ([]string, error) {
	handler, err := c.newHandler()
	if err != nil {
		return nil, err
	}

	collector := &wordCollector{inner: handler}
	if _, err := c.process(ctx, collector, r, nil); err != nil {
		return nil, err
	}
	return collector.words, nil
}

// NormalizeLine normalizes a single line as if it were line 1 of a list.
func (c *Checker) NormalizeLine(raw string) (string, error) {
	handler, err := c.newHandler()
	if err != nil {
		return "", err
	}
	line, err := handler.HandleLine(1, raw)
	if err != nil {
		return "", err
	}
	return line.Output, nil
}

// CheckWithDefaults normalizes a wordlist with the default configuration.
func CheckWithDefaults(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	c, err := New()
	if err != nil {
		return Stats{}, err
	}
	defer c.Close()
	return c.Check(ctx, r, w)
}

// NormalizeString normalizes a whole wordlist held in memory.
func (c *Checker) NormalizeString(ctx context.Context, list string) (string, error) {
	var sb strings.Builder
	if _, err := c.Check(ctx, strings.NewReader(list), &sb); err != nil {
		return sb.String(), err
	}
	return sb.String(), nil
}

type wordCollector struct {
	inner ports.LineHandler
	words []string
}

func (wc *wordCollector) HandleLine(number int, raw string) (domain.Line, error) {
	line, err := wc.inner.HandleLine(number, raw)
	if err == nil && line.Kind == domain.KindWord {
		wc.words = append(wc.words, line.Output)
	}
	return line, err
}
