package toolcall

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_SingleQuotes(t *testing.T) {
	out := Repair(`{'tool': 'dice_roll', 'params': {'sides': 20}}`)
	assert.Equal(t, `{"tool": "dice_roll", "params": {"sides": 20}}`, out)
	assertDecodes(t, out)
}

func TestRepair_BarewordKeys(t *testing.T) {
	out := Repair(`{tool: "calculator", params: {expression: "25 * 4"}}`)
	assert.Equal(t, `{"tool": "calculator", "params": {"expression": "25 * 4"}}`, out)
	assertDecodes(t, out)
}

func TestRepair_TrailingCommas(t *testing.T) {
	out := Repair(`{"tool": "coin_flip", "params": {"count": 2,},}`)
	assert.Equal(t, `{"tool": "coin_flip", "params": {"count": 2}}`, out)
	assertDecodes(t, out)
}

func TestRepair_AllThreeShapesCombined(t *testing.T) {
	out := Repair(`{tool: 'random_number', params: {min: 1, max: 10,},}`)
	assert.Equal(t, `{"tool": "random_number", "params": {"min": 1, "max": 10}}`, out)
	assertDecodes(t, out)
}

func TestRepair_ValidJSONUntouched(t *testing.T) {
	in := `{"tool": "current_time", "params": {}}`
	assert.Equal(t, in, Repair(in))
}

func TestRepair_DoesNotFixOtherShapes(t *testing.T) {
	// Unbalanced braces and missing colons are outside the documented
	// repair scope and must stay broken.
	for _, in := range []string{
		`{"tool" "dice_roll"}`,
		`{"tool": "dice_roll"`,
	} {
		var obj map[string]interface{}
		assert.Error(t, json.Unmarshal([]byte(Repair(in)), &obj), "input: %s", in)
	}
}

func assertDecodes(t *testing.T, s string) {
	t.Helper()
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &obj))
}
