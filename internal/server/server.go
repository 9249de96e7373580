// Package server exposes a fitted tokenizer over HTTP.
//
// The API is read-only: encode and decode never mutate tokenizer state, so
// requests can be served concurrently without locking (fitting happens
// before the server starts).
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-wordtok/internal/config"
	"github.com/example/go-wordtok/internal/tokenizer"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Transformer is the tokenizer surface the HTTP handler needs.
// It is satisfied by tokenizer.Tokenizer.
type Transformer interface {
	TextsToSequences(texts []string) ([][]int, error)
	SequencesToTexts(sequences [][]int) ([]string, error)
	ToRecord() (tokenizer.Record, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxBodyBytes int64
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		maxBodyBytes: 1 << 20,
		logger:       slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxBodyBytes sets the maximum allowed request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	tok  Transformer
	opts options
	log  *slog.Logger
}

// NewHandler returns an http.Handler serving /health, /config,
// POST /encode, and POST /decode.
func NewHandler(tok Transformer, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		tok:  tok,
		opts: opts,
		log:  opts.logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/config", h.handleConfig)
	mux.HandleFunc("/encode", h.handleEncode)
	mux.HandleFunc("/decode", h.handleDecode)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

func (h *handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rec, err := h.tok.ToRecord()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type encodeRequest struct {
	Texts []string `json:"texts"`
}

type encodeResponse struct {
	Sequences [][]int `json:"sequences"`
}

func (h *handler) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if !h.readBody(w, r, &req) {
		return
	}
	if req.Texts == nil {
		writeError(w, http.StatusBadRequest, "texts field is required")
		return
	}

	start := time.Now()
	sequences, err := h.tok.TextsToSequences(req.Texts)
	if err != nil {
		h.writeTransformError(w, r, "encode", err)
		return
	}

	h.log.InfoContext(r.Context(), "encode complete",
		slog.Int("documents", len(req.Texts)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	writeJSON(w, http.StatusOK, encodeResponse{Sequences: sequences})
}

type decodeRequest struct {
	Sequences [][]int `json:"sequences"`
}

type decodeResponse struct {
	Texts []string `json:"texts"`
}

func (h *handler) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if !h.readBody(w, r, &req) {
		return
	}
	if req.Sequences == nil {
		writeError(w, http.StatusBadRequest, "sequences field is required")
		return
	}

	start := time.Now()
	texts, err := h.tok.SequencesToTexts(req.Sequences)
	if err != nil {
		h.writeTransformError(w, r, "decode", err)
		return
	}

	h.log.InfoContext(r.Context(), "decode complete",
		slog.Int("sequences", len(req.Sequences)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	writeJSON(w, http.StatusOK, decodeResponse{Texts: texts})
}

// readBody enforces the POST method and body size limit, then decodes the
// JSON request into dst. Returns false when a response was already written.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return false
	}

	body := http.MaxBytesReader(w, r.Body, h.opts.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds maximum size of %d bytes", h.opts.maxBodyBytes))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}

	return true
}

func (h *handler) writeTransformError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, tokenizer.ErrNotFitted) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	h.log.ErrorContext(r.Context(), op+" failed",
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server — wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tok             Transformer
	shutdownTimeout time.Duration
}

func New(cfg config.Config, tok Transformer) *Server {
	return &Server{
		cfg:             cfg,
		tok:             tok,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	h := NewHandler(s.tok, WithMaxBodyBytes(int64(s.cfg.Server.MaxTextBytes)))

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}
