// Command server exposes the wordlist normalizer over HTTP.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/valyala/fasthttp"

	wordlist "github.com/baditaflorin/go_wordlist_check"
	"github.com/baditaflorin/go_wordlist_check/internal/adapters/logger"
	"github.com/baditaflorin/go_wordlist_check/internal/config"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

var version = "dev"

// CLI defines the command-line flags of the server. Zero values fall back to the config file.
type CLI struct {
	Config         string        `type:"path" help:"YAML configuration file"`
	Host           string        `help:"Listen host"`
	Port           int           `help:"Listen port"`
	MaxRequestSize int           `name:"max-request-size" help:"Maximum request size in bytes"`
	ReadTimeout    time.Duration `name:"read-timeout" help:"HTTP read timeout"`
	WriteTimeout   time.Duration `name:"write-timeout" help:"HTTP write timeout"`
	LogFile        string        `name:"log-file" type:"path" help:"Log file path (empty = stderr)"`
	Verbose        bool          `short:"v" help:"Enable debug logging"`

	Version kong.VersionFlag `help:"Print version information and exit"`
}

// apply overlays non-zero flags on cfg.
func (c *CLI) apply(cfg *config.Config) {
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.MaxRequestSize != 0 {
		cfg.Server.MaxRequestSize = c.MaxRequestSize
	}
	if c.ReadTimeout != 0 {
		cfg.Server.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout != 0 {
		cfg.Server.WriteTimeout = c.WriteTimeout
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
	if c.Verbose {
		cfg.Log.Level = "debug"
	}
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("server"),
		kong.Description("HTTP service for wordlist normalization"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cli.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	lg, closeLog, err := createLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	checkers, err := newCheckers(cfg.Check, lg)
	if err != nil {
		lg.Error("Failed to initialize checkers", "error", err)
		closeLog()
		os.Exit(1)
	}

	lg.Info("Starting wordlist HTTP server",
		"address", cfg.Server.Address(),
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
	)

	server := &fasthttp.Server{
		Handler:               newRequestHandler(checkers, lg),
		Name:                  "WordlistServer",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			lg.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	if err := server.ListenAndServe(cfg.Server.Address()); err != nil {
		lg.Error("Server error", "error", err)
		closeLog()
		os.Exit(1)
	}

	<-idleConnsClosed
	lg.Info("Server stopped")
}

// createLogger creates the JSON logger writing to the log file, or to
// stderr when none is configured. The returned func closes both.
func createLogger(cfg config.LogConfig, stderr io.Writer) (ports.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	output := stderr
	var logFile *os.File
	if cfg.File != "" {
		logFile, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = logFile
	}

	lg, err := logger.NewStdLoggerWithOptions(logger.Options{
		Output: output,
		Level:  level,
		JSON:   true,
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

// checkers holds one Checker per duplicate policy so a request can pick either.
type checkers struct {
	standard         *wordlist.Checker
	rejectDuplicates *wordlist.Checker
	defaultReject    bool
}

func newCheckers(cfg config.CheckConfig, lg ports.Logger) (*checkers, error) {
	build := func(reject bool) (*wordlist.Checker, error) {
		return wordlist.New(
			wordlist.WithPortsLogger(lg),
			wordlist.WithRejectDuplicates(reject),
			wordlist.WithUnicodeNormalization(cfg.UnicodeNormalizationOrDefault()),
			wordlist.WithChunkSize(cfg.ChunkSize),
		)
	}

	standard, err := build(false)
	if err != nil {
		return nil, err
	}
	strict, err := build(true)
	if err != nil {
		return nil, err
	}

	return &checkers{
		standard:         standard,
		rejectDuplicates: strict,
		defaultReject:    cfg.RejectDuplicates,
	}, nil
}

func (c *checkers) forRequest(ctx *fasthttp.RequestCtx) *wordlist.Checker {
	args := ctx.QueryArgs()
	reject := c.defaultReject
	if args.Has("reject_duplicates") {
		reject = args.GetBool("reject_duplicates")
	}
	if reject {
		return c.rejectDuplicates
	}
	return c.standard
}
