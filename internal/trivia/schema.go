package trivia

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const responseSchemaURL = "schema://opentdb-response.json"

// responseSchema describes the provider envelope. Only the fields the
// normalizer reads are required.
const responseSchema = `{
  "type": "object",
  "required": ["response_code"],
  "properties": {
    "response_code": {"type": "integer", "minimum": 0},
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "correct_answer", "incorrect_answers"],
        "properties": {
          "type": {"type": "string"},
          "difficulty": {"type": "string"},
          "category": {"type": "string"},
          "question": {"type": "string", "minLength": 1},
          "correct_answer": {"type": "string", "minLength": 1},
          "incorrect_answers": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string"}
          }
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledResponseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, not raw bytes.
		var def any
		if err := json.Unmarshal([]byte(responseSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse response schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(responseSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(responseSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateResponse checks a raw provider body against the envelope schema.
// Failures are reported as *MalformedDataError.
func validateResponse(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &MalformedDataError{Index: -1, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compiledResponseSchema()
	if err != nil {
		return fmt.Errorf("compile response schema: %w", err)
	}

	if err := sch.Validate(parsed); err != nil {
		return &MalformedDataError{Index: -1, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
