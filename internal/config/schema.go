package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema reflects Config into a JSON schema document for editors and tooling.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Config{})
	if schema == nil {
		return nil, fmt.Errorf("config schema: reflection returned nil")
	}
	schema.Title = "Survivor Game Config"
	schema.Description = "Balance and deployment values loaded from YAML at startup."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("config schema: marshal: %w", err)
	}
	return append(data, '\n'), nil
}
