package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"

	"github.com/Knetic/govaluate"
)

func init() {
	toolcore.RegisterBuiltin("calculator", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &CalculatorTool{}, nil
	})
}

// CalculatorTool evaluates an arithmetic expression. Pure function: the same
// expression always yields the same result.
type CalculatorTool struct{}

func (t *CalculatorTool) Name() string {
	return "calculator"
}

func (t *CalculatorTool) Description() string {
	return "Evaluate an arithmetic expression, for example \"25 * 4\" or \"(3 + 5) / 2\"."
}

func (t *CalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"expression": map[string]interface{}{
				"type":        "string",
				"description": "Arithmetic expression to evaluate",
			},
		},
		"required": []string{"expression"},
	}
}

func (t *CalculatorTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Expression string `json:"expression"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	expression := strings.TrimSpace(args.Expression)
	if expression == "" {
		return nil, fmt.Errorf("expression is required")
	}

	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %v", err)
	}

	value, err := expr.Evaluate(nil)
	if err != nil {
		return nil, fmt.Errorf("evaluate expression: %v", err)
	}

	num, ok := value.(float64)
	if !ok {
		return nil, fmt.Errorf("expression did not evaluate to a number")
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return nil, fmt.Errorf("expression result is not a finite number")
	}

	return toolcore.Success(map[string]interface{}{
		"expression": expression,
		"result":     num,
	})
}
