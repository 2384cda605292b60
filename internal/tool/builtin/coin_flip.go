package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	toolcore "github.com/mizunoe/kaiwa/internal/tool"
)

const maxCoinFlips = 50

func init() {
	toolcore.RegisterBuiltin("coin_flip", func(options toolcore.BuiltinOptions) (toolcore.Tool, error) {
		return &CoinFlipTool{}, nil
	})
}

// CoinFlipTool flips one or more fair coins.
type CoinFlipTool struct{}

func (t *CoinFlipTool) Name() string {
	return "coin_flip"
}

func (t *CoinFlipTool) Description() string {
	return "Flip one or more coins and report heads or tails."
}

func (t *CoinFlipTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of coins to flip (1-50, default 1)",
			},
		},
	}
}

func (t *CoinFlipTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	_ = ctx

	var args struct {
		Count int `json:"count"`
	}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}

	count := args.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > maxCoinFlips {
		return nil, fmt.Errorf("count must be between 1 and %d", maxCoinFlips)
	}

	flips := make([]string, count)
	heads := 0
	for i := range flips {
		if rand.IntN(2) == 0 {
			flips[i] = "heads"
			heads++
		} else {
			flips[i] = "tails"
		}
	}

	return toolcore.Success(map[string]interface{}{
		"count":  count,
		"flips":  flips,
		"heads":  heads,
		"tails":  count - heads,
		"result": flips[0],
	})
}
