package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
)

// userList is the users tab: the fetched accounts, an optional fuzzy
// filter, and a cursor.
type userList struct {
	users     []adminapi.User
	visible   []adminapi.User
	cursor    int
	filter    textinput.Model
	filtering bool
}

func newUserList() userList {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 128
	ti.Width = 30
	return userList{filter: ti}
}

func (l *userList) setUsers(users []adminapi.User) {
	l.users = users
	l.applyFilter()
}

// applyFilter fuzzy-matches against email and name.
func (l *userList) applyFilter() {
	query := l.filter.Value()
	if query == "" {
		l.visible = l.users
	} else {
		haystack := make([]string, len(l.users))
		for i, u := range l.users {
			haystack[i] = u.Email + " " + u.Name
		}
		matches := fuzzy.Find(query, haystack)
		l.visible = make([]adminapi.User, 0, len(matches))
		for _, match := range matches {
			l.visible = append(l.visible, l.users[match.Index])
		}
	}
	if l.cursor >= len(l.visible) {
		l.cursor = max(0, len(l.visible)-1)
	}
}

// selected returns the user under the cursor.
func (l *userList) selected() (adminapi.User, bool) {
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return adminapi.User{}, false
	}
	return l.visible[l.cursor], true
}

// update handles keys while the users tab is active. It reports
// whether it consumed the key.
func (l *userList) update(msg tea.KeyMsg) (tea.Cmd, bool) {
	if l.filtering {
		switch msg.String() {
		case "enter", "esc":
			l.filtering = false
			l.filter.Blur()
			return nil, true
		}
		var cmd tea.Cmd
		l.filter, cmd = l.filter.Update(msg)
		l.applyFilter()
		return cmd, true
	}

	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
		return nil, true
	case "down", "j":
		if l.cursor < len(l.visible)-1 {
			l.cursor++
		}
		return nil, true
	case "/":
		l.filtering = true
		l.filter.Focus()
		return nil, true
	}
	return nil, false
}

func (l *userList) view() string {
	var sb strings.Builder
	if l.filtering || l.filter.Value() != "" {
		sb.WriteString(l.filter.View())
		sb.WriteString("\n\n")
	}
	if len(l.visible) == 0 {
		sb.WriteString(dimStyle.Render("no users"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, u := range l.visible {
		twofa := dimStyle.Render("   -")
		if u.TwoFactorEnabled {
			twofa = badgeOnStyle.Render(" 2FA")
		}
		row := fmt.Sprintf("%-32s %-20s %s  %2d att (%s)", u.Email, u.Name, twofa, u.AttachmentCount, u.AttachmentSize)
		if i == l.cursor {
			row = selectedRowStyle.Render("▸ " + row)
		} else {
			row = "  " + row
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
