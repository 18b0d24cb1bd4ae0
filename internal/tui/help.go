package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# wardenctl panel

## Global

| Key | Action |
|-----|--------|
| ` + "`1` / `2`" + ` | users / config tab |
| ` + "`R`" + ` | force client resync (bump revision) |
| ` + "`?`" + ` | toggle this help |
| ` + "`q`" + ` | quit |

## Users

| Key | Action |
|-----|--------|
| ` + "`j` / `k`" + ` | move |
| ` + "`/`" + ` | fuzzy filter |
| ` + "`c`" + ` | copy email to clipboard |
| ` + "`i`" + ` | invite a new user |
| ` + "`d`" + ` | delete user (retype email to confirm) |
| ` + "`f`" + ` | remove two-factor credentials |
| ` + "`s`" + ` | deauthorize sessions |

## Config

| Key | Action |
|-----|--------|
| ` + "`tab` / `shift+tab`" + ` | next / previous field |
| ` + "`space`" + ` | toggle checkbox (group masters clear their dependents) |
| ` + "`ctrl+v`" + ` | reveal / mask password field |
| ` + "`ctrl+z`" + ` | collapse / expand current section |
| ` + "`ctrl+s`" + ` | save configuration |
| ` + "`ctrl+r`" + ` | reset configuration (type "delete" to confirm) |
| ` + "`ctrl+b`" + ` | back up database |

Every command reloads the view when it finishes, success or failure.
`

// renderHelp renders the help overlay. Glamour failures fall back to
// the raw markdown.
func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
