package genai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// requirementsSchema constrains the shape of the model's extraction
// output before it is unmarshaled. Field-level cleanup (empty names,
// digit normalization) happens afterwards in CleanRequirements.
const requirementsSchemaJSON = `{
  "type": "object",
  "required": ["items", "formulas", "fees", "tables"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["category", "name", "description"],
        "properties": {
          "category": {"type": "string"},
          "name": {"type": "string"},
          "description": {"type": "string"},
          "input_type": {"type": "string"},
          "required": {"type": "boolean"}
        }
      }
    },
    "formulas": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description", "formula"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "formula": {"type": "string"},
          "variables": {"type": "array", "items": {"type": "string"}},
          "conditions": {"type": "string"}
        }
      }
    },
    "fees": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "description"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "amount": {"type": "string"},
          "conditions": {"type": "string"}
        }
      }
    },
    "tables": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "rows"],
        "properties": {
          "title": {"type": "string"},
          "headers": {"type": "array", "items": {"type": "string"}},
          "rows": {
            "type": "array",
            "items": {"type": "array", "items": {"type": "string"}}
          }
        }
      }
    }
  }
}`

var requirementsSchema = jsonschema.MustCompileString("requirements.json", requirementsSchemaJSON)

// ValidateRequirementsJSON checks raw model output against the
// requirements schema.
func ValidateRequirementsJSON(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return requirementsSchema.Validate(v)
}
