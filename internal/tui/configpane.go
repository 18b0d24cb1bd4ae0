package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/form"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// configPane is the config tab: the live form plus focus handling. The
// pane is rebuilt from scratch on every view reload; nothing in it
// survives a dispatched command.
type configPane struct {
	form  *form.Form
	focus int // index into form.EditableFields()
}

func newConfigPane() configPane {
	return configPane{}
}

// setSchema rebuilds the live form from a fresh snapshot.
func (p *configPane) setSchema(s *schema.Schema) ([]string, error) {
	f, warnings, err := form.New(s)
	if err != nil {
		return warnings, err
	}
	p.form = f
	p.focus = 0
	p.syncFocus()
	return warnings, nil
}

func (p *configPane) fields() []*form.Field {
	if p.form == nil {
		return nil
	}
	return p.form.EditableFields()
}

func (p *configPane) focused() *form.Field {
	fields := p.fields()
	if p.focus < 0 || p.focus >= len(fields) {
		return nil
	}
	return fields[p.focus]
}

func (p *configPane) syncFocus() {
	for i, f := range p.fields() {
		if f.Type == schema.FieldCheckbox {
			continue
		}
		if i == p.focus {
			f.Input.Focus()
		} else {
			f.Input.Blur()
		}
	}
}

func (p *configPane) move(delta int) {
	fields := p.fields()
	if len(fields) == 0 {
		return
	}
	p.focus = (p.focus + delta + len(fields)) % len(fields)
	p.syncFocus()
}

// sectionOf finds the section holding the focused field.
func (p *configPane) sectionOf(field *form.Field) string {
	if p.form == nil || field == nil {
		return ""
	}
	for _, sec := range p.form.Sections {
		for _, f := range sec.Fields {
			if f == field {
				return sec.ID
			}
		}
	}
	return ""
}

// update handles keys while the config tab is active. Checkbox changes
// re-apply the group toggle bindings, which may disable and clear
// dependent fields.
func (p *configPane) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if p.form == nil {
		return nil, false
	}

	focused := p.focused()
	switch msg.String() {
	case "up", "shift+tab":
		p.move(-1)
		return nil, true
	case "down", "tab":
		p.move(1)
		return nil, true
	case "ctrl+z":
		if focused != nil {
			p.form.ToggleSection(p.sectionOf(focused))
		}
		return nil, true
	case "ctrl+v":
		if focused != nil {
			focused.ToggleReveal()
		}
		return nil, true
	case " ":
		if focused != nil && focused.Type == schema.FieldCheckbox {
			focused.Toggle()
			p.form.ApplyToggles(focused)
			return nil, true
		}
	}

	if focused != nil && focused.Type != schema.FieldCheckbox && !focused.Disabled() {
		var cmd tea.Cmd
		focused.Input, cmd = focused.Input.Update(msg)
		return cmd, true
	}
	return nil, false
}

// serialize walks the live form into the typed payload.
func (p *configPane) serialize() (map[string]any, error) {
	if p.form == nil {
		return nil, nil
	}
	return p.form.Serialize()
}

func (p *configPane) view() string {
	if p.form == nil {
		return dimStyle.Render("no config loaded") + "\n"
	}
	return p.form.View(p.focused())
}
