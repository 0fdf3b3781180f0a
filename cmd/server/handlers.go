package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	wordlist "github.com/baditaflorin/go_wordlist_check"
	"github.com/baditaflorin/go_wordlist_check/internal/ports"
)

// requestTimeout bounds a single normalization run
const requestTimeout = 30 * time.Second

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Line    int    `json:"line,omitempty"`
	Content string `json:"content,omitempty"`
	Char    string `json:"char,omitempty"`
}

// WordsResponse represents the response of the words endpoint
type WordsResponse struct {
	Words []string `json:"words"`
	Count int      `json:"count"`
}

type handler struct {
	checkers *checkers
	logger   ports.Logger
}

// newRequestHandler returns the fasthttp request handler routing all endpoints
func newRequestHandler(c *checkers, lg ports.Logger) fasthttp.RequestHandler {
	h := &handler{checkers: c, logger: lg}
	return h.handle
}

func (h *handler) handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		h.handleHealthCheck(ctx)
	case "/normalize":
		h.handleNormalize(ctx)
	case "/words":
		h.handleWords(ctx)
	default:
		writeJSONError(ctx, fasthttp.StatusNotFound, ErrorResponse{Error: "Not found"})
	}

	h.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (h *handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	writeJSONResponse(ctx, fasthttp.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleNormalize returns the normalized form of the posted wordlist
func (h *handler) handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var out bytes.Buffer
	stats, err := h.checkers.forRequest(ctx).Check(c, bytes.NewReader(ctx.PostBody()), &out)
	if err != nil {
		h.writeCheckError(ctx, err)
		return
	}

	ctx.Response.Header.Set("X-Wordlist-Lines", strconv.Itoa(stats.Lines))
	ctx.Response.Header.Set("X-Wordlist-Changed", strconv.Itoa(stats.Changed))
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(out.Bytes())
}

// handleWords returns the normalized words of the posted wordlist as JSON
func (h *handler) handleWords(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeJSONError(ctx, fasthttp.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	c, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	words, err := h.checkers.forRequest(ctx).Words(c, bytes.NewReader(ctx.PostBody()))
	if err != nil {
		h.writeCheckError(ctx, err)
		return
	}
	if words == nil {
		words = []string{}
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, WordsResponse{Words: words, Count: len(words)})
}

// writeCheckError maps wordlist errors to 422 and anything else to 500
func (h *handler) writeCheckError(ctx *fasthttp.RequestCtx, err error) {
	var verr *wordlist.ValidationError
	var derr *wordlist.DuplicateWordError
	switch {
	case errors.As(err, &verr):
		writeJSONError(ctx, fasthttp.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Line:    verr.Line,
			Content: verr.Content,
			Char:    string(verr.Char),
		})
	case errors.As(err, &derr):
		writeJSONError(ctx, fasthttp.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Line:    derr.Line,
			Content: derr.Word,
		})
	default:
		h.logger.Error("Wordlist processing failed", "error", err)
		writeJSONError(ctx, fasthttp.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// Helper functions

// writeJSONResponse writes a JSON response to the context
func writeJSONResponse(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		writeJSONError(ctx, fasthttp.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func writeJSONError(ctx *fasthttp.RequestCtx, status int, errResponse ErrorResponse) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)

	response, err := json.Marshal(errResponse)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
