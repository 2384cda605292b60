package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizunoe/kaiwa/internal/agent"
	"github.com/mizunoe/kaiwa/internal/config"
)

type stubRunner struct {
	outcome *agent.Outcome
	err     error
	panics  bool
	lastMsg string
}

func (s *stubRunner) Run(ctx context.Context, message string) (*agent.Outcome, error) {
	s.lastMsg = message
	if s.panics {
		panic("stub runner exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func newTestServer(t *testing.T, runner ChatRunner, toolCount int) *Server {
	t.Helper()
	s, err := New(config.ServerConfig{Port: config.DefaultServerPort}, runner, toolCount)
	require.NoError(t, err)
	return s
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubRunner{}, 11)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Tools     int    `json:"tools"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 11, body.Tools)
	assert.NotEmpty(t, body.Timestamp)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestChatEndpoint_Success(t *testing.T) {
	runner := &stubRunner{outcome: &agent.Outcome{
		Response:  "25 * 4 = 100.",
		State:     agent.StateAnswered,
		ToolsUsed: []string{"calculator"},
		Tokens:    42,
		Cost:      0.000084,
	}}
	s := newTestServer(t, runner, 11)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Was ist 25 * 4?"}`))
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Was ist 25 * 4?", runner.lastMsg)

	var body struct {
		Response  string   `json:"response"`
		ToolsUsed []string `json:"toolsUsed"`
		Cost      float64  `json:"cost"`
		Tokens    int      `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "25 * 4 = 100.", body.Response)
	assert.Equal(t, []string{"calculator"}, body.ToolsUsed)
	assert.Equal(t, 42, body.Tokens)
	assert.InDelta(t, 0.000084, body.Cost, 1e-9)
}

func TestChatEndpoint_EmptyToolsUsedIsArray(t *testing.T) {
	runner := &stubRunner{outcome: &agent.Outcome{Response: "Hi.", State: agent.StateAnswered}}
	s := newTestServer(t, runner, 11)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"toolsUsed":[]`)
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	s := newTestServer(t, &stubRunner{}, 11)

	for _, payload := range []string{`{}`, `{"message":""}`, `{"message":42}`, `{"message":null}`, `not json`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(payload))
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)
		assert.Contains(t, rec.Body.String(), `"error"`, "payload: %s", payload)
	}
}

func TestChatEndpoint_LoopFailure(t *testing.T) {
	s := newTestServer(t, &stubRunner{err: errors.New("completion failed after 3 attempts")}, 11)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error     string   `json:"error"`
		ToolsUsed []string `json:"toolsUsed"`
		Cost      float64  `json:"cost"`
		Tokens    int      `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	assert.Equal(t, []string{}, body.ToolsUsed)
	assert.Zero(t, body.Tokens)
	assert.Zero(t, body.Cost)
}

func TestChatEndpoint_PanicRecovered(t *testing.T) {
	s := newTestServer(t, &stubRunner{panics: true}, 11)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestChatEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubRunner{}, 11)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestIndexFallback(t *testing.T) {
	s := newTestServer(t, &stubRunner{}, 11)

	for _, path := range []string{"/", "/anything", "/deep/nested/path"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusOK, rec.Code, "path: %s", path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", "path: %s", path)
		assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>", "path: %s", path)
	}
}
