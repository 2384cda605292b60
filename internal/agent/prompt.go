package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mizunoe/kaiwa/internal/tool"
)

const (
	userTurnPrefix      = "User: "
	assistantTurnPrefix = "Assistant: "
)

const defaultSystemPreamble = "You are a helpful assistant. You can answer directly, or use exactly one of the tools below when it helps."

// BuildSystemPrompt renders the tool catalog into the instruction block the
// model sees on every iteration. The model signals a tool invocation by
// answering with a single JSON object, anything else counts as a final answer.
// An empty preamble falls back to the built-in one.
func BuildSystemPrompt(preamble string, descriptors []tool.Descriptor) string {
	var b strings.Builder

	preamble = strings.TrimSpace(preamble)
	if preamble == "" {
		preamble = defaultSystemPreamble
	}
	b.WriteString(preamble)
	b.WriteString("\n\n")
	b.WriteString("Available tools:\n")

	for _, d := range descriptors {
		fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.Description)
		if len(d.Parameters) > 0 {
			if raw, err := json.Marshal(d.Parameters); err == nil {
				fmt.Fprintf(&b, "  parameters: %s\n", raw)
			}
		}
	}

	b.WriteString("\nTo call a tool, reply with only a JSON object of the form ")
	b.WriteString(`{"tool": "<name>", "params": {...}}`)
	b.WriteString(" and nothing else. Call at most one tool per reply.\n")
	b.WriteString("When a tool result appears in the conversation, use it to answer. ")
	b.WriteString("When you do not need a tool, reply with the final answer in plain language.")

	return b.String()
}

func toolResultTurn(toolName string, payload json.RawMessage) string {
	return fmt.Sprintf("Tool result (%s): %s", toolName, payload)
}

func renderPrompt(systemPrompt string, turns []string) string {
	parts := make([]string, 0, len(turns)+2)
	parts = append(parts, systemPrompt)
	parts = append(parts, turns...)
	parts = append(parts, "Assistant:")
	return strings.Join(parts, "\n\n")
}
