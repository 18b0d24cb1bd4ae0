package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/confirm"
)

// confirmModal is the typed-challenge dialog shown before destructive
// commands. The guarded command is dispatched only on an exact match;
// a mismatch closes the modal with a notice and sends nothing.
type confirmModal struct {
	gate   confirm.Gate
	input  textinput.Model
	action tea.Cmd
}

func newConfirmModal(gate confirm.Gate, action tea.Cmd) *confirmModal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40
	return &confirmModal{
		gate:   gate,
		input:  ti,
		action: action,
	}
}

// update handles a key press. It returns the command to run (the
// guarded action on a match), whether the modal should close, and a
// status notice.
func (c *confirmModal) update(msg tea.KeyMsg) (tea.Cmd, bool, string) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return nil, true, "cancelled"
	case "enter":
		if err := c.gate.Check(c.input.Value()); err != nil {
			return nil, true, "confirmation does not match, nothing sent"
		}
		return c.action, true, ""
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd, false, ""
}

func (c *confirmModal) view() string {
	return modalStyle.Render(c.gate.Prompt + "\n\n" + c.input.View())
}

// inviteModal collects an email address for the invite command.
type inviteModal struct {
	input  textinput.Model
	submit func(email string) tea.Cmd
}

func newInviteModal(submit func(email string) tea.Cmd) *inviteModal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "user@example.com"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40
	return &inviteModal{input: ti, submit: submit}
}

func (i *inviteModal) update(msg tea.KeyMsg) (tea.Cmd, bool, string) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return nil, true, "cancelled"
	case "enter":
		email := i.input.Value()
		if email == "" {
			return nil, false, "email cannot be blank"
		}
		return i.submit(email), true, ""
	}
	var cmd tea.Cmd
	i.input, cmd = i.input.Update(msg)
	return cmd, false, ""
}

func (i *inviteModal) view() string {
	return modalStyle.Render("Invite a new user\n\n" + i.input.View())
}
