package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExportFormat selects the serialization used by Export.
type ExportFormat string

const (
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// Export dumps the schema's current values grouped by section, for
// operator inspection or offline diffing. Groups without elements are
// omitted.
func (s *Schema) Export(format ExportFormat) ([]byte, error) {
	out := make(map[string]map[string]any, len(s.groups))
	for _, g := range s.groups {
		if len(g.Elements) == 0 {
			continue
		}
		section := make(map[string]any, len(g.Elements))
		for _, e := range g.Elements {
			section[e.Name] = e.Value
		}
		out[g.Group] = section
	}

	switch format {
	case ExportYAML:
		return yaml.Marshal(out)
	case ExportJSON:
		return json.MarshalIndent(out, "", "  ")
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
