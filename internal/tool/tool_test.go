package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTool struct {
	name        string
	description string
	parameters  map[string]interface{}
	execute     func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

func (s *stubTool) Name() string                        { return s.name }
func (s *stubTool) Description() string                 { return s.description }
func (s *stubTool) Parameters() map[string]interface{}  { return s.parameters }
func (s *stubTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	if s.execute == nil {
		return json.RawMessage(`{"success":true}`), nil
	}
	return s.execute(ctx, input)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "echo"})

	got, ok := registry.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", got.Name())

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistryGetTrimsName(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "echo"})

	_, ok := registry.Get("  echo  ")
	assert.True(t, ok)
}

func TestRegistryRegisterOverwritesSameName(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "echo", description: "first"})
	registry.Register(&stubTool{name: "echo", description: "second"})

	require.Equal(t, 1, registry.Count())
	got, ok := registry.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "second", got.Description())
}

func TestRegistryRegisterEmptyNamePanics(t *testing.T) {
	registry := NewRegistry()
	assert.Panics(t, func() {
		registry.Register(&stubTool{name: "   "})
	})
}

func TestRegistryDescriptorsSorted(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&stubTool{name: "weather", description: "w"})
	registry.Register(&stubTool{name: "calculator", description: "c"})
	registry.Register(&stubTool{name: "dice_roll", description: "d"})

	descriptors := registry.Descriptors()
	require.Len(t, descriptors, 3)
	assert.Equal(t, "calculator", descriptors[0].Name)
	assert.Equal(t, "dice_roll", descriptors[1].Name)
	assert.Equal(t, "weather", descriptors[2].Name)
}

func TestSuccessAddsFlag(t *testing.T) {
	raw, err := Success(map[string]interface{}{"result": 42})
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, true, payload["success"])
	assert.EqualValues(t, 42, payload["result"])
}

func TestFailureShape(t *testing.T) {
	raw := Failure("something broke")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "something broke", payload["error"])
}

var errStubExec = errors.New("stub exec failed")
