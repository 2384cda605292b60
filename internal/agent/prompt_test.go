package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mizunoe/kaiwa/internal/tool"
)

func TestBuildSystemPrompt_DefaultPreamble(t *testing.T) {
	prompt := BuildSystemPrompt("", []tool.Descriptor{
		{Name: "calculator", Description: "Evaluate arithmetic."},
	})

	assert.Contains(t, prompt, defaultSystemPreamble)
	assert.Contains(t, prompt, "- calculator: Evaluate arithmetic.")
	assert.Contains(t, prompt, "Call at most one tool per reply.")
}

func TestBuildSystemPrompt_CustomPreamble(t *testing.T) {
	prompt := BuildSystemPrompt("You are a pirate.", nil)

	assert.Contains(t, prompt, "You are a pirate.")
	assert.NotContains(t, prompt, defaultSystemPreamble)
}
