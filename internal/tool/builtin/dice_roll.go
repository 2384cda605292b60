package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

const (
	defaultDiceSides = 6
	maxDiceSides     = 1000
	maxDiceCount     = 20
)

func init() {
	toolcore.RegisterBuiltin("dice_roll", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &DiceRollTool{}, nil
	})
}

// DiceRollTool rolls one or more dice. Cryptographically insecure randomness
// on purpose.
type DiceRollTool struct{}

func (t *DiceRollTool) Name() string {
	return "dice_roll"
}

func (t *DiceRollTool) Description() string {
	return "Roll dice with a configurable number of sides."
}

func (t *DiceRollTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"sides": map[string]interface{}{
				"type":        "integer",
				"description": "Number of sides per die (2-1000, default 6)",
			},
			"count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of dice to roll (1-20, default 1)",
			},
		},
	}
}

func (t *DiceRollTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Sides int `json:"sides"`
		Count int `json:"count"`
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}

	sides := args.Sides
	if sides == 0 {
		sides = defaultDiceSides
	}
	if sides < 2 || sides > maxDiceSides {
		return nil, fmt.Errorf("sides must be between 2 and %d", maxDiceSides)
	}

	count := args.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > maxDiceCount {
		return nil, fmt.Errorf("count must be between 1 and %d", maxDiceCount)
	}

	rolls := make([]int, count)
	total := 0
	for i := range rolls {
		rolls[i] = rand.IntN(sides) + 1
		total += rolls[i]
	}

	result := total
	if count == 1 {
		result = rolls[0]
	}

	return toolcore.Success(map[string]interface{}{
		"sides":  sides,
		"count":  count,
		"rolls":  rolls,
		"result": result,
	})
}
