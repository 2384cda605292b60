package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

func init() {
	toolcore.RegisterBuiltin("random_number", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &RandomNumberTool{}, nil
	})
}

// RandomNumberTool picks an integer from an inclusive range.
type RandomNumberTool struct{}

func (t *RandomNumberTool) Name() string {
	return "random_number"
}

func (t *RandomNumberTool) Description() string {
	return "Generate a random integer between min and max (inclusive)."
}

func (t *RandomNumberTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"min": map[string]interface{}{
				"type":        "integer",
				"description": "Lower bound (inclusive)",
			},
			"max": map[string]interface{}{
				"type":        "integer",
				"description": "Upper bound (inclusive)",
			},
		},
		"required": []string{"min", "max"},
	}
}

func (t *RandomNumberTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Min int64 `json:"min"`
		Max int64 `json:"max"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if args.Min > args.Max {
		return nil, fmt.Errorf("min (%d) must not exceed max (%d)", args.Min, args.Max)
	}

	value := args.Min + rand.Int64N(args.Max-args.Min+1)

	return toolcore.Success(map[string]interface{}{
		"min":    args.Min,
		"max":    args.Max,
		"result": value,
	})
}
