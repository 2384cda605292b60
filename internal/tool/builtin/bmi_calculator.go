package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

const (
	minBMIHeightCm = 50
	maxBMIHeightCm = 250
	maxBMIWeightKg = 500
)

func init() {
	toolcore.RegisterBuiltin("bmi_calculator", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &BMICalculatorTool{}, nil
	})
}

// BMICalculatorTool computes body mass index from height and weight.
type BMICalculatorTool struct{}

func (t *BMICalculatorTool) Name() string {
	return "bmi_calculator"
}

func (t *BMICalculatorTool) Description() string {
	return "Calculate body mass index from height in centimeters and weight in kilograms."
}

func (t *BMICalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"heightCm": map[string]interface{}{
				"type":        "number",
				"description": "Height in centimeters (50-250)",
			},
			"weightKg": map[string]interface{}{
				"type":        "number",
				"description": "Weight in kilograms",
			},
		},
		"required": []string{"heightCm", "weightKg"},
	}
}

func (t *BMICalculatorTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		HeightCm float64 `json:"heightCm"`
		WeightKg float64 `json:"weightKg"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if args.HeightCm < minBMIHeightCm || args.HeightCm > maxBMIHeightCm {
		return nil, fmt.Errorf("heightCm must be between %d and %d", minBMIHeightCm, maxBMIHeightCm)
	}
	if args.WeightKg <= 0 || args.WeightKg > maxBMIWeightKg {
		return nil, fmt.Errorf("weightKg must be between 0 and %d", maxBMIWeightKg)
	}

	heightM := args.HeightCm / 100
	bmi := math.Round(args.WeightKg/(heightM*heightM)*10) / 10

	return toolcore.Success(map[string]interface{}{
		"heightCm": args.HeightCm,
		"weightKg": args.WeightKg,
		"bmi":      bmi,
		"category": bmiCategory(bmi),
	})
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}
