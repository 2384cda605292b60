package tool

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError carries all field-level messages from one validation pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// ValidateInput checks if the JSON input matches the tool's parameter schema.
// This is a lightweight implementation of JSON Schema validation; it returns
// a *ValidationError listing every violation rather than stopping at the first.
func ValidateInput(schema map[string]interface{}, input json.RawMessage) error {
	inputMap := map[string]interface{}{}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &inputMap); err != nil {
			return &ValidationError{Fields: []string{fmt.Sprintf("invalid JSON input: %v", err)}}
		}
	}

	var fields []string
	validateObject(schema, inputMap, &fields)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateObject(schema map[string]interface{}, input map[string]interface{}, fields *[]string) {
	// Check Required Fields
	if required, ok := schema["required"].([]interface{}); ok {
		for _, field := range required {
			fieldName, ok := field.(string)
			if !ok {
				continue // Malformed schema
			}
			if _, exists := input[fieldName]; !exists {
				*fields = append(*fields, fmt.Sprintf("missing required field: %s", fieldName))
			}
		}
	} else if required, ok := schema["required"].([]string); ok {
		for _, fieldName := range required {
			if _, exists := input[fieldName]; !exists {
				*fields = append(*fields, fmt.Sprintf("missing required field: %s", fieldName))
			}
		}
	}

	// Check Properties
	properties, ok := schema["properties"].(map[string]interface{})
	if !ok {
		return
	}

	for key, value := range input {
		propSchema, defined := properties[key]
		if !defined {
			// Extra fields are tolerated; the executor ignores them.
			continue
		}

		propSchemaMap, ok := propSchema.(map[string]interface{})
		if !ok {
			continue
		}

		validateType(key, propSchemaMap, value, fields)
	}
}

func validateType(fieldName string, schema map[string]interface{}, value interface{}, fields *[]string) {
	expectedType, ok := schema["type"].(string)
	if !ok {
		return
	}

	switch expectedType {
	case "string":
		if _, ok := value.(string); !ok {
			*fields = append(*fields, fmt.Sprintf("field '%s' expected string, got %T", fieldName, value))
		}
	case "number", "integer":
		// JSON unmarshals numbers to float64
		if _, ok := value.(float64); !ok {
			*fields = append(*fields, fmt.Sprintf("field '%s' expected number, got %T", fieldName, value))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			*fields = append(*fields, fmt.Sprintf("field '%s' expected boolean, got %T", fieldName, value))
		}
	case "array":
		arr, ok := value.([]interface{})
		if !ok {
			*fields = append(*fields, fmt.Sprintf("field '%s' expected array, got %T", fieldName, value))
			return
		}
		if itemsSchema, ok := schema["items"].(map[string]interface{}); ok {
			for i, item := range arr {
				validateType(fmt.Sprintf("%s[%d]", fieldName, i), itemsSchema, item, fields)
			}
		}
	case "object":
		obj, ok := value.(map[string]interface{})
		if !ok {
			*fields = append(*fields, fmt.Sprintf("field '%s' expected object, got %T", fieldName, value))
			return
		}
		validateObject(schema, obj, fields)
	}
}
