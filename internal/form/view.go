package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f59e0b")).
				Bold(true)

	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af")).
			Width(28)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f3f4f6")).
				Bold(true).
				Width(28)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4b5563"))

	readOnlyValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6b7280"))
)

// View renders the whole form. The focused field gets a highlighted
// label; collapsed sections render header-only.
func (f *Form) View(focused *Field) string {
	var sb strings.Builder
	for _, sec := range f.Sections {
		sb.WriteString(sec.View(focused))
		sb.WriteString("\n")
	}
	return sb.String()
}

// View renders one section with its expand/collapse marker.
func (s *Section) View(focused *Field) string {
	arrow := "▾"
	if s.Collapsed {
		arrow = "▸"
	}
	var sb strings.Builder
	sb.WriteString(sectionHeaderStyle.Render(fmt.Sprintf("%s %s", arrow, s.Title)))
	sb.WriteString("\n")
	if s.Collapsed {
		return sb.String()
	}
	for _, field := range s.Fields {
		sb.WriteString("  ")
		sb.WriteString(field.View(field == focused))
		sb.WriteString("\n")
	}
	return sb.String()
}

// View renders one field as a label/control row.
func (f *Field) View(focused bool) string {
	label := fieldLabelStyle
	if focused {
		label = focusedLabelStyle
	}
	if f.disabled {
		label = disabledStyle.Width(28)
	}

	var control string
	switch {
	case !f.editable:
		control = readOnlyValueStyle.Render(f.display)
	case f.Type == schema.FieldCheckbox:
		mark := "[ ]"
		if f.checked {
			mark = "[x]"
		}
		if f.disabled {
			control = disabledStyle.Render(mark)
		} else {
			control = mark
		}
	case f.disabled:
		control = disabledStyle.Render(f.Input.Value())
	default:
		control = f.Input.View()
	}

	return label.Render(f.Label) + " " + control
}
