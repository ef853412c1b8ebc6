package config

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed engine.schema.json
var engineSchemaJSON string

var (
	engineSchemaOnce sync.Once
	engineSchema     *jsonschema.Schema
	engineSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	engineSchemaOnce.Do(func() {
		engineSchema, engineSchemaErr = jsonschema.CompileString("engine.schema.json", engineSchemaJSON)
	})
	return engineSchema, engineSchemaErr
}

// validateSchema checks a raw YAML document against the embedded JSON schema.
func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling engine schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding yaml: %w", err)
	}
	if doc == nil {
		return nil
	}

	value, err := toJSONValue(doc)
	if err != nil {
		return fmt.Errorf("converting yaml document: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
