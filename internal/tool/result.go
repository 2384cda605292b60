package tool

import "encoding/json"

// Success marshals a tool payload with the success flag set.
func Success(fields map[string]interface{}) (json.RawMessage, error) {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	return json.Marshal(out)
}

// Failure builds the structured failure payload appended to the transcript
// when a tool invocation cannot produce a result.
func Failure(message string) json.RawMessage {
	raw, err := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   message,
	})
	if err != nil {
		return json.RawMessage(`{"success":false,"error":"tool failure"}`)
	}
	return raw
}
