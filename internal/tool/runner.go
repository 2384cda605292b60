package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kaiwaErrors "github.com/mizunoe/kaiwa/internal/errors"
	"github.com/mizunoe/kaiwa/internal/logger"
)

type Runner struct {
	registry *Registry
}

func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

func (r *Runner) Descriptors() []Descriptor {
	if r == nil || r.registry == nil {
		return nil
	}
	return r.registry.Descriptors()
}

func (r *Runner) Count() int {
	if r == nil || r.registry == nil {
		return 0
	}
	return r.registry.Count()
}

// Execute handles the full lifecycle: Find Tool -> Validate Input -> Run Tool.
// It never panics; every failure mode comes back as a structured
// {success:false, error} payload alongside a categorized error so the caller
// can tell a successful invocation from a failed one.
func (r *Runner) Execute(ctx context.Context, toolName string, input json.RawMessage) (result json.RawMessage, err error) {
	requestedName := NormalizeToolName(toolName)
	traceID := logger.GetTraceID(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Tool executor panicked", "tool", requestedName, "panic", rec, "trace_id", traceID)
			err = kaiwaErrors.ToolFailed(fmt.Sprintf("tool %s: unexpected fault: %v", requestedName, rec))
			result = Failure(err.Error())
		}
	}()

	// Find Tool
	t, ok := r.registry.Get(requestedName)
	if !ok {
		err = kaiwaErrors.NotFound(fmt.Sprintf("tool not found: %s", requestedName))
		return Failure(err.Error()), err
	}

	// Input Validation
	if verr := ValidateInput(t.Parameters(), input); verr != nil {
		slog.Warn("Tool input validation failed", "tool", requestedName, "error", verr, "trace_id", traceID)
		err = kaiwaErrors.InvalidInput(verr.Error())
		return Failure(err.Error()), err
	}

	// Execution
	start := time.Now()
	slog.Info("Executing tool", "tool", requestedName, "trace_id", traceID)

	raw, execErr := t.Execute(ctx, input)

	duration := time.Since(start)
	if execErr != nil {
		slog.Warn("Tool execution failed", "tool", requestedName, "error", execErr, "duration", duration, "trace_id", traceID)
		err = kaiwaErrors.ToolFailed(execErr.Error())
		return Failure(execErr.Error()), err
	}

	slog.Info("Tool execution success", "tool", requestedName, "duration", duration, "trace_id", traceID)
	return raw, nil
}
