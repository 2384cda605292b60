package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mizunoe/kaiwa/internal/agent"
	"github.com/mizunoe/kaiwa/internal/config"
	"github.com/mizunoe/kaiwa/internal/logger"
)

//go:embed web/index.html
var webFS embed.FS

// ChatRunner is the loop surface the HTTP layer depends on.
type ChatRunner interface {
	Run(ctx context.Context, message string) (*agent.Outcome, error)
}

// Server exposes the chat loop over HTTP.
type Server struct {
	runner    ChatRunner
	toolCount int
	server    *http.Server
}

func New(cfg config.ServerConfig, runner ChatRunner, toolCount int) (*Server, error) {
	readTimeout, err := config.DurationOrDefault(cfg.ReadTimeout, config.DefaultServerReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse read_timeout: %w", err)
	}
	writeTimeout, err := config.DurationOrDefault(cfg.WriteTimeout, config.DefaultServerWriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse write_timeout: %w", err)
	}
	idleTimeout, err := config.DurationOrDefault(cfg.IdleTimeout, config.DefaultServerIdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse idle_timeout: %w", err)
	}

	port := cfg.Port
	if port <= 0 {
		port = config.DefaultServerPort
	}

	s := &Server{
		runner:    runner,
		toolCount: toolCount,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s, nil
}

// Handler builds the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/", s.handleIndex)
	return s.withTraceID(s.withRecovery(mux))
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		slog.Info("Starting HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type chatRequest struct {
	Message json.RawMessage `json:"message"`
}

type chatResponse struct {
	Response  string   `json:"response"`
	ToolsUsed []string `json:"toolsUsed"`
	Cost      float64  `json:"cost"`
	Tokens    int      `json:"tokens"`
}

type errorResponse struct {
	Error     string   `json:"error"`
	ToolsUsed []string `json:"toolsUsed"`
	Cost      float64  `json:"cost"`
	Tokens    int      `json:"tokens"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"tools":     s.toolCount,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "invalid request body",
			ToolsUsed: []string{},
		})
		return
	}

	var message string
	if err := json.Unmarshal(req.Message, &message); err != nil || strings.TrimSpace(message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:     "message is required and must be a non-empty string",
			ToolsUsed: []string{},
		})
		return
	}

	// The loop keeps running even if the client disconnects; tool and model
	// calls are not cancelled mid-flight by a closed connection.
	ctx := context.WithoutCancel(r.Context())

	outcome, err := s.runner.Run(ctx, message)
	if err != nil {
		slog.Error("Chat request failed", "error", err, "trace_id", logger.GetTraceID(ctx))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     "internal server error",
			ToolsUsed: []string{},
		})
		return
	}

	toolsUsed := outcome.ToolsUsed
	if toolsUsed == nil {
		toolsUsed = []string{}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:  outcome.Response,
		ToolsUsed: toolsUsed,
		Cost:      outcome.Cost,
		Tokens:    outcome.Tokens,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (s *Server) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := ulid.Make().String()
		ctx := logger.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-Id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panicked", "panic", rec, "path", r.URL.Path, "trace_id", logger.GetTraceID(r.Context()))
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Error:     "internal server error",
					ToolsUsed: []string{},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
