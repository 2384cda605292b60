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
	toolcore.RegisterBuiltin("days_until", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &DaysUntilTool{}, nil
	})
}

// DaysUntilTool counts days between today and a target date. Past dates
// yield a negative count.
type DaysUntilTool struct {
	Now func() time.Time
}

func (t *DaysUntilTool) Name() string {
	return "days_until"
}

func (t *DaysUntilTool) Description() string {
	return "Count the days from today until a date (YYYY-MM-DD). Negative for past dates."
}

func (t *DaysUntilTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"date": map[string]interface{}{
				"type":        "string",
				"description": "Target date in YYYY-MM-DD format",
			},
		},
		"required": []string{"date"},
	}
}

func (t *DaysUntilTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	target, err := time.Parse("2006-01-02", strings.TrimSpace(args.Date))
	if err != nil {
		return nil, fmt.Errorf("date must use YYYY-MM-DD format")
	}

	now := time.Now()
	if t.Now != nil {
		now = t.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	days := int(target.Sub(today).Hours() / 24)

	return toolcore.Success(map[string]interface{}{
		"date":   target.Format("2006-01-02"),
		"result": days,
	})
}
