// Package schema renders JSON Schemas for plugin configuration structs so
// packaging tooling can validate settings without loading the module.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generate reflects a JSON Schema (Draft 2020-12) from a configuration
// struct. Struct definitions are expanded inline so the schema stands alone
// inside a manifest.
func Generate(model any) ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	s := reflector.Reflect(model)

	out, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal failed: %w", err)
	}
	return out, nil
}
