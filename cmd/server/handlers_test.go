package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_wordlist_check/internal/adapters/logger"
	"github.com/baditaflorin/go_wordlist_check/internal/config"
)

func newTestHandler(t *testing.T, cfg config.CheckConfig) fasthttp.RequestHandler {
	t.Helper()
	c, err := newCheckers(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("newCheckers: %v", err)
	}
	return newRequestHandler(c, logger.NewNop())
}

func doRequest(h fasthttp.RequestHandler, method, uri, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	ctx.Request.SetBodyString(body)
	h(&ctx)
	return &ctx
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)
	ctx := doRequest(h, fasthttp.MethodGet, "/health", "")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var body map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["time"]); err != nil {
		t.Errorf("time field not RFC3339: %q", body["time"])
	}
}

func TestNormalize(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)
	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", "# list\n  the \nOF\n\n")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if got := string(ctx.Response.Body()); got != "# list\nThe\nOf\n\n" {
		t.Errorf("body = %q", got)
	}
	if got := string(ctx.Response.Header.Peek("X-Wordlist-Lines")); got != "4" {
		t.Errorf("X-Wordlist-Lines = %q, want 4", got)
	}
	if got := string(ctx.Response.Header.Peek("X-Wordlist-Changed")); got != "2" {
		t.Errorf("X-Wordlist-Changed = %q, want 2", got)
	}
}

func TestNormalizeValidationError(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)
	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", "apple\nwi-fi\n")

	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Line != 2 || resp.Char != "-" || resp.Content != "wi-fi" {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestNormalizeRejectDuplicatesQuery(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)

	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", "apple\napple\n")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("duplicates should pass by default, status = %d", ctx.Response.StatusCode())
	}

	ctx = doRequest(h, fasthttp.MethodPost, "/normalize?reject_duplicates=true", "apple\napple\n")
	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", ctx.Response.StatusCode())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Line != 2 || resp.Content != "Apple" {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestNormalizeConfigRejectsDuplicates(t *testing.T) {
	cfg := config.Default().Check
	cfg.RejectDuplicates = true
	h := newTestHandler(t, cfg)

	ctx := doRequest(h, fasthttp.MethodPost, "/normalize", "apple\napple\n")
	if ctx.Response.StatusCode() != fasthttp.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", ctx.Response.StatusCode())
	}
	ctx = doRequest(h, fasthttp.MethodPost, "/normalize?reject_duplicates=false", "apple\napple\n")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("query should override config, status = %d", ctx.Response.StatusCode())
	}
}

func TestWords(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)
	ctx := doRequest(h, fasthttp.MethodPost, "/words", "# header\napple\n\n BANANA\n")

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var resp WordsResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !reflect.DeepEqual(resp.Words, []string{"Apple", "Banana"}) || resp.Count != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}

	ctx = doRequest(h, fasthttp.MethodPost, "/words", "")
	if string(ctx.Response.Body()) != `{"words":[],"count":0}` {
		t.Errorf("empty list body = %s", ctx.Response.Body())
	}
}

func TestRouting(t *testing.T) {
	h := newTestHandler(t, config.Default().Check)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "Unknown path", method: fasthttp.MethodGet, path: "/nope", status: fasthttp.StatusNotFound},
		{name: "GET normalize", method: fasthttp.MethodGet, path: "/normalize", status: fasthttp.StatusMethodNotAllowed},
		{name: "GET words", method: fasthttp.MethodGet, path: "/words", status: fasthttp.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(h, tc.method, tc.path, "")
			if ctx.Response.StatusCode() != tc.status {
				t.Errorf("status = %d, want %d", ctx.Response.StatusCode(), tc.status)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil || resp.Error == "" {
				t.Errorf("expected JSON error body, got %s", ctx.Response.Body())
			}
		})
	}
}

func TestCLIApply(t *testing.T) {
	cfg := config.Default()
	cli := CLI{Port: 9090, ReadTimeout: time.Second, Verbose: true}
	cli.apply(cfg)

	if cfg.Server.Port != 9090 || cfg.Server.ReadTimeout != time.Second {
		t.Errorf("flags not applied: %+v", cfg.Server)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("zero flags must keep config values, host = %q", cfg.Server.Host)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("verbose should set debug level, got %q", cfg.Log.Level)
	}
}

func TestCreateLoggerWritesAndClosesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	var stderr bytes.Buffer
	lg, closeLog, err := createLogger(config.LogConfig{Level: "debug", File: path}, &stderr)
	if err != nil {
		t.Fatalf("createLogger: %v", err)
	}
	lg.Debug("log-file-debug-message")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "log-file-debug-message") {
		t.Errorf("log file = %q, want the debug message", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("nothing should go to stderr when a log file is set, got %q", stderr.String())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&^0644 != 0 {
		t.Errorf("log file mode = %o, want at most 0644", perm)
	}
}

func TestCreateLoggerDefaultsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	lg, closeLog, err := createLogger(config.LogConfig{Level: "warn"}, &stderr)
	if err != nil {
		t.Fatalf("createLogger: %v", err)
	}
	lg.Info("stderr-info-message")
	lg.Warn("stderr-warn-message")
	closeLog()

	out := stderr.String()
	if strings.Contains(out, "stderr-info-message") {
		t.Errorf("info message should be filtered at warn: %q", out)
	}
	if !strings.Contains(out, "stderr-warn-message") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestCreateLoggerRejectsUnknownLevel(t *testing.T) {
	if _, _, err := createLogger(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
