package form

import (
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// Section is one rendered group of fields. Editable sections are
// independently collapsible; the synthetic read-only section aggregates
// every non-editable element regardless of original group.
type Section struct {
	ID        string
	Title     string
	Fields    []*Field
	Collapsed bool
	ReadOnly  bool
}

// Form is the live representation of a config schema: editable sections
// in schema order, one trailing read-only section, and the toggle
// bindings that keep dependent fields in sync with their group master.
type Form struct {
	Sections []*Section
	bindings []*ToggleBinding
}

// ReadOnlyTitle is the header of the synthetic non-interactive section.
const ReadOnlyTitle = "Read-Only Config"

// New builds the live form from a schema snapshot. Validation errors
// (duplicate names, broken toggle references, unsupported types) abort
// the build; warnings about unreachable elements are returned for the
// caller to log.
func New(s *schema.Schema) (*Form, []string, error) {
	warnings, err := s.Validate()
	if err != nil {
		return nil, warnings, err
	}

	f := &Form{}
	for _, g := range s.Groups() {
		// Groups without documentation are skipped in the editable
		// pass; their non-editable elements still reach the read-only
		// section below.
		if g.GroupDoc == "" {
			continue
		}

		sec := &Section{ID: g.Group, Title: g.GroupDoc}
		var toggle *Field
		var others []*Field
		for _, el := range g.Elements {
			if !el.Editable {
				continue
			}
			field, err := NewField(el, true)
			if err != nil {
				return nil, warnings, err
			}
			sec.Fields = append(sec.Fields, field)
			if el.Name == g.GroupToggle {
				toggle = field
			} else {
				others = append(others, field)
			}
		}
		if len(sec.Fields) == 0 {
			continue
		}
		f.Sections = append(f.Sections, sec)

		// The master checkbox never disables itself.
		if toggle != nil {
			binding := &ToggleBinding{Toggle: toggle, Dependents: others}
			binding.bind()
			f.bindings = append(f.bindings, binding)
		}
	}

	ro := &Section{ID: "readonly", Title: ReadOnlyTitle, ReadOnly: true}
	for _, el := range s.ReadOnlyElements() {
		field, err := NewField(el, false)
		if err != nil {
			return nil, warnings, err
		}
		ro.Fields = append(ro.Fields, field)
	}
	if len(ro.Fields) > 0 {
		f.Sections = append(f.Sections, ro)
	}

	return f, warnings, nil
}

// Bindings exposes the toggle bindings, in schema group order.
func (f *Form) Bindings() []*ToggleBinding {
	return f.bindings
}

// ApplyToggles re-evaluates the binding driven by the given checkbox,
// if any. Called after the checkbox's state changes.
func (f *Form) ApplyToggles(changed *Field) {
	for _, b := range f.bindings {
		if b.Toggle == changed {
			b.Apply()
		}
	}
}

// EditableFields returns every interactive field in render order, for
// focus navigation. Disabled fields are included so focus order stays
// stable while a group is toggled off.
func (f *Form) EditableFields() []*Field {
	var out []*Field
	for _, sec := range f.Sections {
		if sec.ReadOnly {
			continue
		}
		out = append(out, sec.Fields...)
	}
	return out
}

// Field looks up a live field by its submission name. Read-only fields
// carry no name and are not reachable here.
func (f *Form) Field(name string) (*Field, bool) {
	if name == "" {
		return nil, false
	}
	for _, sec := range f.Sections {
		for _, field := range sec.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return nil, false
}

// ToggleSection flips the collapsed state of one editable section.
// Sections are mutually independent; collapsing one never expands
// another.
func (f *Form) ToggleSection(id string) {
	for _, sec := range f.Sections {
		if sec.ID == id {
			sec.Collapsed = !sec.Collapsed
		}
	}
}
