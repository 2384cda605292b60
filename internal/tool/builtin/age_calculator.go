package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

func init() {
	toolcore.RegisterBuiltin("age_calculator", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &AgeCalculatorTool{}, nil
	})
}

// AgeCalculatorTool computes the current age for a birth date.
type AgeCalculatorTool struct {
	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (t *AgeCalculatorTool) Name() string {
	return "age_calculator"
}

func (t *AgeCalculatorTool) Description() string {
	return "Calculate age in years from a birth date (YYYY-MM-DD)."
}

func (t *AgeCalculatorTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"birthDate": map[string]interface{}{
				"type":        "string",
				"description": "Birth date in YYYY-MM-DD format",
			},
		},
		"required": []string{"birthDate"},
	}
}

func (t *AgeCalculatorTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		BirthDate string `json:"birthDate"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(args.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("birthDate must use YYYY-MM-DD format")
	}

	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if birthDate.After(today) {
		return nil, fmt.Errorf("birthDate is in the future")
	}

	years := today.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(today) {
		years--
	}

	totalDays := int(today.Sub(birthDate).Hours() / 24)

	return toolcore.Success(map[string]interface{}{
		"birthDate": birthDate.Format("2006-01-02"),
		"years":     years,
		"totalDays": totalDays,
	})
}
