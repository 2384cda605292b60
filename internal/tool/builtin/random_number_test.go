package builtin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomNumberToolExecute_WithinRange(t *testing.T) {
	tool := &RandomNumberTool{}

	for range 50 {
		raw, err := tool.Execute(context.Background(), json.RawMessage(`{"min":5,"max":10}`))
		require.NoError(t, err)

		var resp struct {
			Result int64 `json:"result"`
		}
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.GreaterOrEqual(t, resp.Result, int64(5))
		assert.LessOrEqual(t, resp.Result, int64(10))
	}
}

func TestRandomNumberToolExecute_SingleValueRange(t *testing.T) {
	tool := &RandomNumberTool{}

	raw, err := tool.Execute(context.Background(), json.RawMessage(`{"min":7,"max":7}`))
	require.NoError(t, err)

	var resp struct {
		Result int64 `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	assert.Equal(t, int64(7), resp.Result)
}

func TestRandomNumberToolExecute_RejectsInvertedRange(t *testing.T) {
	tool := &RandomNumberTool{}

	_, err := tool.Execute(context.Background(), json.RawMessage(`{"min":10,"max":5}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed")
}
