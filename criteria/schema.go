package criteria

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"
)

// RawSchema returns the JSON schema of the record the advisor asks for.
func RawSchema() (string, error) {
	schema := jsonschema.Reflect(&RawRecord{})
	schema.Title = "Clothing criteria"
	schema.Description = "Preferences collected from the user. Emitted as a single JSON object once every criterion is known."
	data, err := sonic.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(data), nil
}
