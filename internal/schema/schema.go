// Package schema models the backend-declared description of configurable
// options: typed elements grouped into named sections, with an optional
// master toggle per group. The model is a read-only snapshot; all live
// mutation happens in the rendered form.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
)

// FieldType is the closed set of supported control kinds. The type fully
// determines the rendered control, the coercion applied on submit, and
// whether a reveal affordance is offered (password only).
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldPassword FieldType = "password"
	FieldCheckbox FieldType = "checkbox"
)

// ParseFieldType validates a wire type string against the closed set.
// Unknown types are an error: a silently dropped field would silently
// lose a configuration option on save.
func ParseFieldType(s string) (FieldType, error) {
	switch t := FieldType(s); t {
	case FieldText, FieldNumber, FieldPassword, FieldCheckbox:
		return t, nil
	default:
		return "", core.ErrSchema(core.CodeUnsupportedFieldType,
			fmt.Sprintf("unsupported field type %q", s))
	}
}

// Doc carries the human-readable label and tooltip of an element.
type Doc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Element is one configurable option. Value and Default arrive already
// coerced to the semantic type implied by Type (bool, number or string).
type Element struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Value    any       `json:"value"`
	Default  any       `json:"default,omitempty"`
	Editable bool      `json:"editable"`
	Doc      Doc       `json:"doc"`
}

// UnmarshalJSON validates the declared type while decoding.
func (e *Element) UnmarshalJSON(data []byte) error {
	type alias Element
	var raw struct {
		alias
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ft, err := ParseFieldType(raw.Type)
	if err != nil {
		return fmt.Errorf("element %q: %w", raw.Name, err)
	}
	*e = Element(raw.alias)
	e.Type = ft
	return nil
}

// BoolValue reads the current value as a checkbox state.
func (e *Element) BoolValue() bool {
	b, _ := e.Value.(bool)
	return b
}

// StringValue renders the current value for display in an input control.
func (e *Element) StringValue() string {
	return displayString(e.Value)
}

// DefaultString renders the default for use as an input placeholder.
func (e *Element) DefaultString() string {
	return displayString(e.Default)
}

func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers decode as float64; keep integers clean.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Group is an ordered collection of elements. A group without a GroupDoc
// is never rendered as an editable section. GroupToggle optionally names
// an element within the group acting as a master enable switch for every
// other input in the group.
type Group struct {
	Group       string    `json:"group"`
	GroupDoc    string    `json:"groupdoc,omitempty"`
	GroupToggle string    `json:"grouptoggle,omitempty"`
	Elements    []Element `json:"elements"`
}

// Schema is the full grouped model, immutable once parsed.
type Schema struct {
	groups []Group
}

// Parse decodes the backend payload into a Schema. Element type
// validation happens during decode; structural validation (uniqueness,
// toggle references) is a separate Validate call so callers can decide
// whether warnings are fatal.
func Parse(data []byte) (*Schema, error) {
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, core.ErrSchema("PARSE", "decoding config schema").WithCause(err)
	}
	return &Schema{groups: groups}, nil
}

// New builds a Schema from already-decoded groups. Used by tests and the
// demo server.
func New(groups []Group) *Schema {
	return &Schema{groups: groups}
}

// Groups returns the groups in declaration order.
func (s *Schema) Groups() []Group {
	return s.groups
}

// AllElements flattens every element across groups, group order first,
// element order within.
func (s *Schema) AllElements() []Element {
	var out []Element
	for _, g := range s.groups {
		out = append(out, g.Elements...)
	}
	return out
}

// ReadOnlyElements aggregates every non-editable element across all
// groups. This is the derived, synthetic read-only section.
func (s *Schema) ReadOnlyElements() []Element {
	var out []Element
	for _, e := range s.AllElements() {
		if !e.Editable {
			out = append(out, e)
		}
	}
	return out
}

// Element looks up an element by its unique name.
func (s *Schema) Element(name string) (Element, bool) {
	for _, e := range s.AllElements() {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// Validate checks structural invariants. Duplicate names and dangling
// toggle references are errors; editable elements trapped in a group
// without a groupdoc are reported as warnings because the editable pass
// skips such groups entirely, making those options unreachable. That is
// almost certainly a schema-authoring mistake, so it is surfaced rather
// than reproduced silently.
func (s *Schema) Validate() ([]string, error) {
	seen := make(map[string]string, len(s.groups)*4)
	var warnings []string

	for _, g := range s.groups {
		toggleFound := g.GroupToggle == ""
		for _, e := range g.Elements {
			if prev, dup := seen[e.Name]; dup {
				return warnings, core.ErrSchema(core.CodeDuplicateName,
					fmt.Sprintf("element %q declared in both %q and %q", e.Name, prev, g.Group))
			}
			seen[e.Name] = g.Group

			if e.Name == g.GroupToggle {
				toggleFound = true
				if e.Type != FieldCheckbox {
					return warnings, core.ErrSchema(core.CodeUnknownToggle,
						fmt.Sprintf("grouptoggle %q in group %q is %s, want checkbox", e.Name, g.Group, e.Type))
				}
				if !e.Editable {
					return warnings, core.ErrSchema(core.CodeUnknownToggle,
						fmt.Sprintf("grouptoggle %q in group %q is not editable", e.Name, g.Group))
				}
			}

			if g.GroupDoc == "" && e.Editable {
				warnings = append(warnings,
					fmt.Sprintf("editable element %q is unreachable: group %q has no groupdoc", e.Name, g.Group))
			}
		}
		if !toggleFound {
			return warnings, core.ErrSchema(core.CodeUnknownToggle,
				fmt.Sprintf("grouptoggle %q names no element in group %q", g.GroupToggle, g.Group))
		}
	}
	return warnings, nil
}
