package lineprocessor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/baditaflorin/go_wordlist_check/internal/core/domain"
	"github.com/baditaflorin/go_wordlist_check/internal/pool"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// Constants for line processing
const (
	// DefaultChunkSize defines the default size of each chunk for reading
	DefaultChunkSize = 64 * 1024 // 64KB

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // lines

	// Common newline characters
	CR = '\r'
	LF = '\n'
)

var lineTerminators = []byte{CR, LF}

// ProcessingConfig defines configuration for line processing
type ProcessingConfig struct {
	ChunkSize int
}

// Processor splits a stream into lines and runs each through a LineHandler
type Processor struct {
	logger  ports.Logger
	handler ports.LineHandler

	chunkPool *pool.ChunkPool
	linePool  *pool.BufferPool
}

// NewProcessor creates a new line processor
func NewProcessor(
	logger ports.Logger,
	handler ports.LineHandler,
	config ProcessingConfig,
) *Processor {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}

	return &Processor{
		logger:    logger,
		handler:   handler,
		chunkPool: pool.NewChunkPool(config.ChunkSize),
		linePool:  pool.NewBufferPool(256), // most wordlist lines are short
	}
}

// run carries the state of a single ProcessLines call
type run struct {
	ctx     context.Context
	handler ports.LineHandler
	out     *bufio.Writer
	stats   domain.Stats
	number  int
}

// ProcessLines reads reader to the end, handling one line at a time, and
// writes every normalized line followed by LF to writer. Processing stops at
// the first handler error; output for earlier lines is flushed and stats
// cover those lines only. A nil writer discards output.
func (p *Processor) ProcessLines(
	ctx context.Context,
	reader io.Reader,
	writer io.Writer,
) (domain.Stats, error) {
	startTime := time.Now()

	r := &run{ctx: ctx, handler: p.handler}
	if writer != nil {
		r.out = bufio.NewWriter(writer)
	}

	err := p.readLines(r, reader)

	if r.out != nil {
		if flushErr := r.out.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("write output: %w", flushErr)
		}
	}
	r.stats.Duration = time.Since(startTime)

	if err != nil {
		return r.stats, err
	}

	p.logger.Debug("Line processing completed",
		"lines", r.stats.Lines,
		"words", r.stats.Words,
		"changed", r.stats.Changed,
		"bytes_processed", r.stats.BytesRead,
		"duration", r.stats.Duration,
	)

	return r.stats, nil
}

func (p *Processor) readLines(r *run, reader io.Reader) error {
	chunkBuffer := p.chunkPool.Get()
	defer p.chunkPool.Put(chunkBuffer)

	lineBuffer := p.linePool.Get()
	defer p.linePool.Put(lineBuffer)

	// A CR ending the previous chunk may be the first half of a CRLF, so
	// the line it ended waits for the next byte.
	pendingCR := false

	emit := func(ending domain.LineEnding) error {
		err := p.processLine(r, *lineBuffer, ending)
		*lineBuffer = (*lineBuffer)[:0]
		return err
	}

	for {
		if err := r.ctx.Err(); err != nil {
			p.logger.Warn("Processing cancelled by context", "error", err, "line", r.number)
			return err
		}

		n, readErr := reader.Read(*chunkBuffer)
		if n > 0 {
			r.stats.BytesRead += int64(n)
			data := (*chunkBuffer)[:n]

			if pendingCR {
				pendingCR = false
				ending := domain.EndingCR
				if data[0] == LF {
					ending = domain.EndingCRLF
					data = data[1:]
				}
				if err := emit(ending); err != nil {
					return err
				}
			}

			for len(data) > 0 {
				i := bytes.IndexAny(data, string(lineTerminators))
				if i < 0 {
					// Partial line, carried over to the next chunk
					*lineBuffer = append(*lineBuffer, data...)
					break
				}
				*lineBuffer = append(*lineBuffer, data[:i]...)

				var ending domain.LineEnding
				switch {
				case data[i] == LF:
					ending = domain.EndingLF
					data = data[i+1:]
				case i+1 == len(data):
					pendingCR = true
					data = nil
					continue
				case data[i+1] == LF:
					ending = domain.EndingCRLF
					data = data[i+2:]
				default:
					ending = domain.EndingCR
					data = data[i+1:]
				}

				if err := emit(ending); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				p.logger.Warn("Error reading from input", "error", readErr, "line", r.number)
				return fmt.Errorf("read input: %w", readErr)
			}

			switch {
			case pendingCR:
				return emit(domain.EndingCR)
			case len(*lineBuffer) > 0:
				// Final line without a terminator
				return emit(domain.EndingNone)
			}
			return nil
		}
	}
}

// processLine handles a single line of text
func (p *Processor) processLine(r *run, raw []byte, ending domain.LineEnding) error {
	r.number++
	if r.number%ContextCheckFrequency == 0 {
		if err := r.ctx.Err(); err != nil {
			p.logger.Warn("Processing cancelled by context", "error", err, "line", r.number)
			return err
		}
	}

	line, err := r.handler.HandleLine(r.number, string(raw))
	if err != nil {
		return err
	}
	line.Ending = ending
	r.stats.Add(line)

	if r.out == nil {
		return nil
	}
	if _, err := r.out.WriteString(line.Output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := r.out.WriteByte(LF); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
