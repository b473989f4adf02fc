// Package schema validates actionmenu configuration against the
// embedded JSON Schema.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed actionmenu.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("actionmenu.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("actionmenu.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates configuration data against the schema. configData
// may be any struct that can be marshaled to JSON.
func (v *Validator) Validate(configData interface{}) error {
	// The schema library validates plain JSON-like values, so round-trip
	// the struct through JSON first.
	jsonData, err := json.Marshal(configData)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("configuration is invalid: %s", formatValidationError(ve))
		}
		return err
	}
	return nil
}

// formatValidationError flattens a validation error tree into a single
// readable line.
func formatValidationError(ve *jsonschema.ValidationError) string {
	leaves := ve.BasicOutput().Errors
	var msgs []string
	for _, l := range leaves {
		if l.Error == "" || strings.HasPrefix(l.Error, "doesn't validate with") {
			continue
		}
		loc := strings.TrimPrefix(l.InstanceLocation, "/")
		if loc == "" {
			msgs = append(msgs, l.Error)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, l.Error))
		}
	}
	if len(msgs) == 0 {
		return ve.Message
	}
	return strings.Join(msgs, "; ")
}
