package gateway

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// resultSchema is the JSON Schema the scoring payload must satisfy before
// it reaches the result transformer. Optional presentation fields are
// deliberately left open; the transformer defaults them.
var resultSchema = map[string]any{
	"type":     "object",
	"required": []any{"type", "normalizedScores"},
	"properties": map[string]any{
		"type": map[string]any{
			"type":      "string",
			"minLength": 4,
			"maxLength": 4,
		},
		"typeName":    map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"rawScores": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "number"},
		},
		"normalizedScores": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "number"},
		},
		"celebrities": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
			},
		},
		"recommendations": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"confidence":   map[string]any{"type": "number"},
		"typeStrength": map[string]any{"type": "string"},
	},
}

var (
	compileOnce    sync.Once
	compiledResult *jsonschema.Schema
	compileErr     error
)

// validateResultPayload checks raw against resultSchema. Returns
// *ErrInvalidPayload on any failure.
func validateResultPayload(raw json.RawMessage) error {
	if len(raw) == 0 {
		return &ErrInvalidPayload{Content: raw, Err: fmt.Errorf("empty result")}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledResultSchema()
	if err != nil {
		return &ErrInvalidPayload{Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// compiledResultSchema compiles resultSchema once and caches it.
func compiledResultSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw
		// bytes. Marshal then unmarshal to get a clean any representation.
		defBytes, err := json.Marshal(resultSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://assessment-result.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledResult, compileErr = c.Compile(schemaURL)
	})
	return compiledResult, compileErr
}
