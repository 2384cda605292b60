package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

func init() {
	toolcore.RegisterBuiltin("unit_converter", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &UnitConverterTool{}, nil
	})
}

// UnitConverterTool converts between a fixed set of unit pairs.
type UnitConverterTool struct{}

func (t *UnitConverterTool) Name() string {
	return "unit_converter"
}

func (t *UnitConverterTool) Description() string {
	return "Convert a value between units: km/mi, kg/lb, c/f."
}

func (t *UnitConverterTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"value": map[string]interface{}{
				"type":        "number",
				"description": "Value to convert",
			},
			"from": map[string]interface{}{
				"type":        "string",
				"description": "Source unit (km, mi, kg, lb, c, f)",
			},
			"to": map[string]interface{}{
				"type":        "string",
				"description": "Target unit (km, mi, kg, lb, c, f)",
			},
		},
		"required": []string{"value", "from", "to"},
	}
}

func (t *UnitConverterTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Value float64 `json:"value"`
		From  string  `json:"from"`
		To    string  `json:"to"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	from := strings.ToLower(strings.TrimSpace(args.From))
	to := strings.ToLower(strings.TrimSpace(args.To))

	result, err := convert(args.Value, from, to)
	if err != nil {
		return nil, err
	}

	return toolcore.Success(map[string]interface{}{
		"value":  args.Value,
		"from":   from,
		"to":     to,
		"result": math.Round(result*10000) / 10000,
	})
}

func convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}

	switch from + ">" + to {
	case "km>mi":
		return value / 1.609344, nil
	case "mi>km":
		return value * 1.609344, nil
	case "kg>lb":
		return value * 2.2046226218, nil
	case "lb>kg":
		return value / 2.2046226218, nil
	case "c>f":
		return value*9/5 + 32, nil
	case "f>c":
		return (value - 32) * 5 / 9, nil
	}

	return 0, fmt.Errorf("unsupported conversion: %s to %s", from, to)
}
