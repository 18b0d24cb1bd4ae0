// Package form renders a live, editable representation of a config
// schema and serializes it back into the strictly-typed payload the
// backend expects. The schema snapshot itself is never mutated; every
// interaction happens on the controls built here.
package form

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// Field is one live control built from a schema element. A field
// rendered editable carries the element's name as its submission name;
// a read-only rendering carries no name and is never serialized.
type Field struct {
	Name    string // submission name; empty when rendered read-only
	Type    schema.FieldType
	Label   string
	Tooltip string

	Input    textinput.Model // text, number, password
	checked  bool            // checkbox state
	display  string          // value shown when read-only
	disabled bool            // set by the dependency toggle controller
	revealed bool            // password reveal state
	editable bool
}

type fieldBuilder func(el schema.Element, editable bool) *Field

// builders is the single dispatch table from field type to renderer.
// A type missing here is unsupported and fails loudly in NewField.
var builders = map[schema.FieldType]fieldBuilder{
	schema.FieldText:     buildInput,
	schema.FieldNumber:   buildInput,
	schema.FieldPassword: buildInput,
	schema.FieldCheckbox: buildCheckbox,
}

// NewField maps one schema element to a concrete control. The editable
// override, not the element flag, governs interactivity so the caller
// can force a read-only rendering for the synthetic section.
func NewField(el schema.Element, editableOverride bool) (*Field, error) {
	build, ok := builders[el.Type]
	if !ok {
		return nil, core.ErrSchema(core.CodeUnsupportedFieldType,
			"unsupported field type "+string(el.Type)).WithDetail("element", el.Name)
	}
	return build(el, editableOverride), nil
}

func buildInput(el schema.Element, editable bool) *Field {
	f := &Field{
		Type:     el.Type,
		Label:    el.Doc.Name,
		Tooltip:  el.Doc.Description,
		editable: editable,
	}
	if !editable {
		f.display = el.StringValue()
		if el.Type == schema.FieldPassword {
			f.display = maskValue(el.StringValue())
		}
		return f
	}

	ti := textinput.New()
	ti.SetValue(el.StringValue())
	ti.Placeholder = el.DefaultString()
	ti.Prompt = ""
	ti.CharLimit = 0
	if el.Type == schema.FieldPassword {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	f.Name = el.Name
	f.Input = ti
	return f
}

func buildCheckbox(el schema.Element, editable bool) *Field {
	f := &Field{
		Type:     schema.FieldCheckbox,
		Label:    el.Doc.Name,
		Tooltip:  el.Doc.Description,
		checked:  el.BoolValue(),
		editable: editable,
	}
	if editable {
		f.Name = el.Name
	}
	return f
}

func maskValue(v string) string {
	if v == "" {
		return ""
	}
	return "••••••••"
}

// Editable reports whether the field was rendered as an interactive
// control. Distinct from Disabled, which a group toggle flips at runtime.
func (f *Field) Editable() bool {
	return f.editable
}

// Disabled reports whether the dependency controller has disabled the
// field.
func (f *Field) Disabled() bool {
	return f.disabled
}

// SetDisabled flips the field's interactivity without touching its value.
func (f *Field) SetDisabled(disabled bool) {
	f.disabled = disabled
}

// Clear erases the field's current value. Destructive: re-enabling does
// not restore it.
func (f *Field) Clear() {
	switch f.Type {
	case schema.FieldCheckbox:
		f.checked = false
	default:
		f.Input.SetValue("")
	}
}

// Checked returns the checkbox state.
func (f *Field) Checked() bool {
	return f.checked
}

// SetChecked sets the checkbox state. The caller is responsible for
// re-applying any toggle binding this checkbox drives.
func (f *Field) SetChecked(checked bool) {
	if f.editable && !f.disabled {
		f.checked = checked
	}
}

// Toggle flips the checkbox state.
func (f *Field) Toggle() {
	f.SetChecked(!f.checked)
}

// RawValue returns the control's current raw value as entered.
func (f *Field) RawValue() string {
	if !f.editable {
		return f.display
	}
	return f.Input.Value()
}

// ToggleReveal flips a password field between masked and plain rendering
// without altering the underlying value. No-op for other types.
func (f *Field) ToggleReveal() {
	if f.Type != schema.FieldPassword || !f.editable {
		return
	}
	f.revealed = !f.revealed
	if f.revealed {
		f.Input.EchoMode = textinput.EchoNormal
	} else {
		f.Input.EchoMode = textinput.EchoPassword
	}
}

// Revealed reports whether a password field currently renders plain.
func (f *Field) Revealed() bool {
	return f.revealed
}
