package contract

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of a Batch. It is published to assistants
// so they can shape their proposals before calling the apply tool.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	s := r.Reflect(&Batch{})
	s.Title = "PRD change batch"
	s.Description = "Ordered add/update/link operations proposed against a PRD, with narrative and citations."
	return s
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
