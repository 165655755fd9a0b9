package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionSetSchemaURL = "schema://question-set.json"

// questionSetSchema describes one question-set file: a JSON array of
// question objects.
const questionSetSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "title":   {"type": "string"},
      "code":    {"type": "string"},
      "lang":    {"type": "string"},
      "answer":  {"type": "string"},
      "explain": {"type": "string"},
      "options": {
        "type": "array",
        "items": {
          "oneOf": [
            {"type": "string"},
            {
              "type": "object",
              "properties": {
                "label": {"type": "string"},
                "text":  {"type": "string"},
                "code":  {"type": "string"}
              }
            }
          ]
        }
      }
    },
    "required": ["title", "options", "answer"]
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func setSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionSetSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(questionSetSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(questionSetSchemaURL)
	})
	return compiledSchema, compileErr
}

// Validate checks raw file contents against the question-set schema.
func Validate(raw []byte) error {
	sch, err := setSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Decode validates raw and decodes it into questions.
func Decode(raw []byte) ([]Question, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return qs, nil
}
