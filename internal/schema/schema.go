// Package schema validates tcemlint configuration files against the
// embedded JSON schema before they are loaded, so typos in option names
// fail fast instead of being silently ignored.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed tcemlint.schema.json
var schemaFS embed.FS

var (
	configSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compile compiles the embedded schema once.
func compile() error {
	compileOnce.Do(func() {
		data, err := schemaFS.ReadFile("tcemlint.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read config schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal config schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("tcemlint.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		configSchema, compileErr = compiler.Compile("tcemlint.schema.json")
	})

	return compileErr
}

// ValidateConfig validates YAML configuration data against the schema.
func ValidateConfig(data []byte) error {
	if err := compile(); err != nil {
		return err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if raw == nil {
		return nil // empty config file is valid
	}

	// Round-trip through JSON so numbers and maps carry the types the
	// validator expects.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("convert config: %w", err)
	}

	if err := configSchema.Validate(instance); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
