// Command wordlist-check validates a wordlist and writes its normalized form.
//
// Usage:
//
//	wordlist-check < words.list > fixed.list
//	wordlist-check words.list -o fixed.list
//	wordlist-check --in-place words.list
//	wordlist-check --check words.list
//
// Blank lines are emitted empty, comments ('#') are trimmed, and every other
// line must be a single word made of letters; words are title-cased. The
// first invalid line stops processing with exit status 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	wordlist "github.com/baditaflorin/go_wordlist_check"
	"github.com/baditaflorin/go_wordlist_check/internal/adapters/logger"
	"github.com/baditaflorin/go_wordlist_check/internal/config"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

var version = "dev"

const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2

	stdinName = "-"
)

// CLI defines the command-line interface for wordlist-check.
type CLI struct {
	Input string `arg:"" optional:"" default:"-" help:"Wordlist to read (\"-\" for stdin)"`

	Output  string `short:"o" type:"path" help:"Write the normalized list to this file instead of stdout"`
	InPlace bool   `short:"i" name:"in-place" help:"Rewrite the input file with its normalized form"`
	Check   bool   `short:"c" help:"Only verify; fail if the list is invalid or not normalized"`

	RejectDuplicates       bool `short:"d" name:"reject-duplicates" help:"Fail when a word appears more than once"`
	NoUnicodeNormalization bool `name:"no-unicode-normalization" help:"Do not convert words to NFC before validation"`

	Config  string `type:"path" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Log debug information to stderr"`
	LogJSON bool   `name:"log-json" help:"Log in JSON format"`

	Version kong.VersionFlag `help:"Print version information and exit"`
}

// Validate rejects incompatible flag combinations.
func (c *CLI) Validate() error {
	if c.InPlace {
		if c.Input == stdinName {
			return errors.New("--in-place requires an input file")
		}
		if c.Output != "" {
			return errors.New("--in-place and --output are mutually exclusive")
		}
	}
	if c.Check && (c.InPlace || c.Output != "") {
		return errors.New("--check does not write output; drop --in-place/--output")
	}
	return nil
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("wordlist-check"),
		kong.Description("Validate a wordlist and write its normalized form"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

func main() {
	var cli CLI
	kong.Parse(&cli, kongOptions()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, &cli, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, cli *CLI, stdin io.Reader, stdout, stderr io.Writer) int {
	if err := cli.Validate(); err != nil {
		fmt.Fprintf(stderr, "wordlist-check: %v\n", err)
		return exitError
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "wordlist-check: %v\n", err)
		return exitError
	}

	lg, closeLog, err := newLogger(cli, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "wordlist-check: %v\n", err)
		return exitError
	}
	defer closeLog()

	checker, err := wordlist.New(
		wordlist.WithPortsLogger(lg),
		wordlist.WithRejectDuplicates(cli.RejectDuplicates || cfg.Check.RejectDuplicates),
		wordlist.WithUnicodeNormalization(cfg.Check.UnicodeNormalizationOrDefault() && !cli.NoUnicodeNormalization),
		wordlist.WithChunkSize(cfg.Check.ChunkSize),
	)
	if err != nil {
		fmt.Fprintf(stderr, "wordlist-check: %v\n", err)
		return exitError
	}

	name := cli.Input
	var input io.Reader = stdin
	if cli.Input == stdinName {
		name = "<stdin>"
	} else {
		file, err := os.Open(cli.Input)
		if err != nil {
			fmt.Fprintf(stderr, "wordlist-check: %v\n", err)
			return exitError
		}
		defer file.Close()
		input = file
	}

	lg.Debug("Checking wordlist",
		"input", name,
		"output", cli.Output,
		"in_place", cli.InPlace,
		"check", cli.Check,
	)

	var stats wordlist.Stats
	switch {
	case cli.Check:
		stats, err = checker.Verify(ctx, input)
	case cli.InPlace:
		err = writeAtomically(cli.Input, outputMode(cli.Input), func(w io.Writer) error {
			var checkErr error
			stats, checkErr = checker.Check(ctx, input, w)
			return checkErr
		})
	case cli.Output != "":
		err = writeAtomically(cli.Output, outputMode(cli.Output), func(w io.Writer) error {
			var checkErr error
			stats, checkErr = checker.Check(ctx, input, w)
			return checkErr
		})
	default:
		stats, err = checker.Check(ctx, input, stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "wordlist-check: %s: %v\n", name, err)
		return exitCode(err)
	}

	lg.Info("Wordlist checked",
		"input", name,
		"lines", stats.Lines,
		"words", stats.Words,
		"comments", stats.Comments,
		"blank", stats.Blank,
		"changed", stats.Changed,
		"duration", stats.Duration,
	)

	if cli.Check && stats.Changed > 0 {
		fmt.Fprintf(stderr, "wordlist-check: %s: not normalized (%d of %d lines would change)\n",
			name, stats.Changed, stats.Lines)
		return exitInvalid
	}

	return exitOK
}

// exitCode maps wordlist errors to exit status 1 and everything else to 2.
func exitCode(err error) int {
	var verr *wordlist.ValidationError
	var derr *wordlist.DuplicateWordError
	if errors.As(err, &verr) || errors.As(err, &derr) {
		return exitInvalid
	}
	return exitError
}

// newLogger builds the stderr (or log file) logger from flags and config.
func newLogger(cli *CLI, cfg *config.Config, stderr io.Writer) (ports.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if cli.Verbose {
		level = logger.LevelDebug
	}

	output := stderr
	var logFile *os.File
	if cfg.Log.File != "" {
		logFile, err = os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = logFile
	}

	lg, err := logger.NewStdLoggerWithOptions(logger.Options{
		Output: output,
		Level:  level,
		JSON:   cli.LogJSON || cfg.Log.JSON,
	})
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	closeLog := func() {
		lg.Close()
		if logFile != nil {
			logFile.Close()
		}
	}
	return lg, closeLog, nil
}
