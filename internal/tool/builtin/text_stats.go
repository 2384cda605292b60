package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

func init() {
	toolcore.RegisterBuiltin("text_stats", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &TextStatsTool{}, nil
	})
}

// TextStatsTool counts characters, words and lines in a text.
type TextStatsTool struct{}

func (t *TextStatsTool) Name() string {
	return "text_stats"
}

func (t *TextStatsTool) Description() string {
	return "Count characters, words and lines in a text."
}

func (t *TextStatsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to analyze",
			},
		},
		"required": []string{"text"},
	}
}

func (t *TextStatsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if args.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	lines := strings.Count(args.Text, "\n") + 1

	return toolcore.Success(map[string]interface{}{
		"characters": utf8.RuneCountInString(args.Text),
		"words":      len(strings.Fields(args.Text)),
		"lines":      lines,
	})
}
