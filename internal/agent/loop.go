package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mizunoe/kaiwa/internal/config"
	"github.com/mizunoe/kaiwa/internal/logger"
	"github.com/mizunoe/kaiwa/internal/model"
	"github.com/mizunoe/kaiwa/internal/tool"
	"github.com/mizunoe/kaiwa/internal/toolcall"
)

// State describes how a loop run ended.
type State string

const (
	// StateAnswered - the model produced a final natural-language answer.
	StateAnswered State = "answered"
	// StateExhausted - the iteration cap was reached without a final answer.
	StateExhausted State = "exhausted"
)

// CompletionClient is the model surface the loop depends on.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, acct *model.Accounting) (string, error)
}

// ToolRunner executes tool invocations parsed out of model output.
type ToolRunner interface {
	Descriptors() []tool.Descriptor
	Execute(ctx context.Context, toolName string, input json.RawMessage) (json.RawMessage, error)
}

// Outcome is the result of one full loop run. Token and cost totals are
// request-local; two concurrent runs never share accounting.
type Outcome struct {
	Response  string
	State     State
	ToolsUsed []string
	Tokens    int
	Cost      float64
}

// Loop drives the completion/tool-execution cycle for one user message.
type Loop struct {
	client          CompletionClient
	runner          ToolRunner
	maxIterations   int
	systemPreamble  string
	fallbackMessage string
}

func NewLoop(client CompletionClient, runner ToolRunner, cfg config.AgentConfig) *Loop {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = config.DefaultAgentMaxIterations
	}
	fallback := strings.TrimSpace(cfg.FallbackMessage)
	if fallback == "" {
		fallback = config.DefaultAgentFallbackMessage
	}

	return &Loop{
		client:          client,
		runner:          runner,
		maxIterations:   maxIterations,
		systemPreamble:  cfg.SystemPrompt,
		fallbackMessage: fallback,
	}
}

// Run executes the loop for a single user message. Each iteration sends the
// transcript to the model, then either returns the model text as the final
// answer or executes the one tool call it contains and feeds the result
// (success or failure payload alike) back into the transcript. A completion
// failure aborts the run; tool failures do not.
func (l *Loop) Run(ctx context.Context, message string) (*Outcome, error) {
	traceID := logger.GetTraceID(ctx)
	systemPrompt := BuildSystemPrompt(l.systemPreamble, l.runner.Descriptors())

	acct := &model.Accounting{}
	turns := []string{userTurnPrefix + message}

	var toolsUsed []string
	seen := map[string]bool{}

	for iteration := 1; iteration <= l.maxIterations; iteration++ {
		content, err := l.client.Complete(ctx, renderPrompt(systemPrompt, turns), acct)
		if err != nil {
			slog.Error("Completion failed", "iteration", iteration, "error", err, "trace_id", traceID)
			return nil, err
		}

		request, isToolCall := toolcall.Parse(content)
		if !isToolCall {
			slog.Info("Loop answered", "iterations", iteration, "tools_used", len(toolsUsed), "trace_id", traceID)
			return &Outcome{
				Response:  strings.TrimSpace(content),
				State:     StateAnswered,
				ToolsUsed: toolsUsed,
				Tokens:    acct.Tokens,
				Cost:      acct.Cost,
			}, nil
		}

		turns = append(turns, assistantTurnPrefix+strings.TrimSpace(content))

		input, err := json.Marshal(request.Params)
		if err != nil {
			input = json.RawMessage(`{}`)
		}

		payload, execErr := l.runner.Execute(ctx, request.Tool, input)
		if execErr == nil && !seen[request.Tool] {
			seen[request.Tool] = true
			toolsUsed = append(toolsUsed, request.Tool)
		}

		turns = append(turns, toolResultTurn(request.Tool, payload))
	}

	slog.Warn("Loop exhausted iteration budget", "max_iterations", l.maxIterations, "trace_id", traceID)
	return &Outcome{
		Response:  l.fallbackMessage,
		State:     StateExhausted,
		ToolsUsed: toolsUsed,
		Tokens:    acct.Tokens,
		Cost:      acct.Cost,
	}, nil
}
