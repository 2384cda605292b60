package builtin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinFlipToolExecute_Single(t *testing.T) {
	tool := &CoinFlipTool{}

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	var resp struct {
		Result string   `json:"result"`
		Flips  []string `json:"flips"`
		Heads  int      `json:"heads"`
		Tails  int      `json:"tails"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	assert.Contains(t, []string{"heads", "tails"}, resp.Result)
	require.Len(t, resp.Flips, 1)
	assert.Equal(t, 1, resp.Heads+resp.Tails)
}

func TestCoinFlipToolExecute_CountsAddUp(t *testing.T) {
	tool := &CoinFlipTool{}

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"count":10}`))
	require.NoError(t, err)

	var resp struct {
		Flips []string `json:"flips"`
		Heads int      `json:"heads"`
		Tails int      `json:"tails"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Len(t, resp.Flips, 10)
	assert.Equal(t, 10, resp.Heads+resp.Tails)
}

func TestCoinFlipToolExecute_Bounds(t *testing.T) {
	tool := &CoinFlipTool{}

	_, err := tool.Execute(context.Background(), json.RawMessage(`{"count":51}`))
	require.Error(t, err)
}
