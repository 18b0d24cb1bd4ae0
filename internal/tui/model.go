// Package tui is the interactive admin panel: a users tab, a config tab
// rendered from the server's schema, and the confirmation modals in
// front of destructive commands. After every dispatched command the
// panel reloads the whole view, so what the operator sees is always the
// server's current state.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/audit"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/clip"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/confirm"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/logging"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// Tab selects the active pane.
type Tab int

const (
	TabUsers Tab = iota
	TabConfig
)

// Model is the panel's bubbletea model.
type Model struct {
	client  *adminapi.Client
	store   *audit.Store // nil when auditing is disabled
	logger  *logging.Logger
	timeout time.Duration

	tab     Tab
	users   userList
	cfg     configPane
	spin    spinner.Model
	loading bool
	status  string
	err     error

	confirmModal *confirmModal
	inviteModal  *inviteModal
	showHelp     bool

	width  int
	height int
}

// Option configures the model.
type Option func(*Model)

// WithAuditStore enables local command auditing.
func WithAuditStore(store *audit.Store) Option {
	return func(m *Model) {
		m.store = store
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Model) {
		m.timeout = timeout
	}
}

// New creates the panel model.
func New(client *adminapi.Client, logger *logging.Logger, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		client:  client,
		logger:  logger,
		timeout: 30 * time.Second,
		users:   newUserList(),
		cfg:     newConfigPane(),
		spin:    sp,
		loading: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner and the initial view load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.reloadCmd())
}

// Update routes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case viewLoadedMsg:
		return m.handleViewLoaded(msg)

	case outcomeMsg:
		return m.handleOutcome(msg)

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.what
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleViewLoaded(msg viewLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.logger.Error("view load failed", "error", msg.err)
		return m, nil
	}
	m.err = nil
	m.users.setUsers(msg.users)
	if warnings, err := m.cfg.setSchema(msg.schema); err != nil {
		m.err = err
		m.logger.Error("config schema rejected", "error", err)
	} else {
		for _, w := range warnings {
			m.logger.Warn("config schema warning", "warning", w)
		}
	}
	return m, nil
}

// handleOutcome surfaces the result and reloads the view exactly once,
// on both success and failure.
func (m Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	if m.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		if err := m.store.Record(ctx, msg.outcome); err != nil {
			m.logger.Warn("audit record failed", "error", err)
		}
		cancel()
	}

	if msg.outcome.Success {
		m.status = msg.successMessage
	} else {
		m.status = msg.failureMessage + ": " + msg.outcome.Detail
	}
	m.loading = true
	return m, tea.Batch(m.spin.Tick, m.reloadCmd())
}

// textEntryActive reports whether keystrokes belong to a text control.
func (m *Model) textEntryActive() bool {
	if m.tab == TabUsers {
		return m.users.filtering
	}
	f := m.cfg.focused()
	return f != nil && f.Type != schema.FieldCheckbox && !f.Disabled()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmModal != nil {
		cmd, done, notice := m.confirmModal.update(msg)
		if done {
			m.confirmModal = nil
		}
		if notice != "" {
			m.status = notice
		}
		return m, cmd
	}
	if m.inviteModal != nil {
		cmd, done, notice := m.inviteModal.update(msg)
		if done {
			m.inviteModal = nil
		}
		if notice != "" {
			m.status = notice
		}
		return m, cmd
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Keys reserved even while a text control is focused.
	switch msg.String() {
	case "ctrl+s":
		if m.tab == TabConfig {
			return m.saveConfig()
		}
	case "ctrl+r":
		if m.tab == TabConfig {
			return m.resetConfig()
		}
	case "ctrl+b":
		if m.tab == TabConfig {
			return m, m.dispatchCmd("backup started", "backup failed", func(ctx context.Context) adminapi.Outcome {
				return m.client.BackupDB(ctx)
			})
		}
	}

	if m.textEntryActive() {
		return m.routeToPane(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "1":
		m.tab = TabUsers
		return m, nil
	case "2":
		m.tab = TabConfig
		return m, nil
	case "R":
		return m, m.dispatchCmd("revision bumped, clients will resync", "resync failed", func(ctx context.Context) adminapi.Outcome {
			return m.client.UpdateRevision(ctx)
		})
	}

	if m.tab == TabUsers {
		if model, cmd, handled := m.handleUserKey(msg); handled {
			return model, cmd
		}
	}
	return m.routeToPane(msg)
}

func (m Model) handleUserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	user, ok := m.users.selected()
	switch msg.String() {
	case "i":
		m.inviteModal = newInviteModal(func(email string) tea.Cmd {
			return m.dispatchCmd("invited "+email, "invite failed", func(ctx context.Context) adminapi.Outcome {
				return m.client.Invite(ctx, email)
			})
		})
		return m, nil, true
	case "c":
		if !ok {
			return m, nil, true
		}
		email := user.Email
		return m, func() tea.Msg {
			_, err := clip.WriteAll(email)
			return copiedMsg{what: email, err: err}
		}, true
	case "d":
		if !ok {
			return m, nil, true
		}
		// Challenge: retype the email. Mismatch sends nothing.
		id := user.ID
		m.confirmModal = newConfirmModal(confirm.DeleteUser(user.Email),
			m.dispatchCmd("deleted "+user.Email, "delete failed", func(ctx context.Context) adminapi.Outcome {
				return m.client.DeleteUser(ctx, id)
			}))
		return m, nil, true
	case "f":
		if !ok {
			return m, nil, true
		}
		id := user.ID
		return m, m.dispatchCmd("two-factor removed for "+user.Email, "remove-2fa failed", func(ctx context.Context) adminapi.Outcome {
			return m.client.RemoveTwoFactor(ctx, id)
		}), true
	case "s":
		if !ok {
			return m, nil, true
		}
		id := user.ID
		return m, m.dispatchCmd("sessions deauthorized for "+user.Email, "deauth failed", func(ctx context.Context) adminapi.Outcome {
			return m.client.DeauthorizeSessions(ctx, id)
		}), true
	}
	return m, nil, false
}

// saveConfig serializes the live form; validation failures block the
// save before any request goes out.
func (m Model) saveConfig() (tea.Model, tea.Cmd) {
	payload, err := m.cfg.serialize()
	if err != nil {
		m.status = "not saved: " + err.Error()
		m.logger.Warn("config serialization failed", "error", err)
		return m, nil
	}
	if payload == nil {
		return m, nil
	}
	return m, m.dispatchCmd("configuration saved", "save failed", func(ctx context.Context) adminapi.Outcome {
		return m.client.SaveConfig(ctx, payload)
	})
}

func (m Model) resetConfig() (tea.Model, tea.Cmd) {
	m.confirmModal = newConfirmModal(confirm.ResetConfig(),
		m.dispatchCmd("configuration reset", "reset failed", func(ctx context.Context) adminapi.Outcome {
			return m.client.ResetConfig(ctx)
		}))
	return m, nil
}

func (m Model) routeToPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tab == TabUsers {
		cmd, _ := m.users.update(msg)
		return m, cmd
	}
	cmd, _ := m.cfg.update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	if m.showHelp {
		return renderHelp(max(40, m.width))
	}
	if m.confirmModal != nil {
		return m.renderChrome(m.confirmModal.view())
	}
	if m.inviteModal != nil {
		return m.renderChrome(m.inviteModal.view())
	}

	var body string
	switch {
	case m.err != nil:
		body = errorStyle.Render("error: "+m.err.Error()) + "\n" + dimStyle.Render("press R to retry via resync, or q to quit")
	case m.tab == TabUsers:
		body = m.users.view()
	default:
		body = m.cfg.view()
	}
	return m.renderChrome(body)
}

func (m Model) renderChrome(body string) string {
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTab("1:users", TabUsers),
		m.renderTab("2:config", TabConfig),
	)
	header := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("wardenctl"), tabs)

	status := m.status
	if m.loading {
		status = m.spin.View() + " loading..."
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if status != "" {
		sb.WriteString(statusStyle.Render(status))
		sb.WriteString("\n")
	}
	sb.WriteString(footerStyle.Render(fmt.Sprintf("%d users · ? help · q quit", len(m.users.users))))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderTab(label string, tab Tab) string {
	if m.tab == tab {
		return activeTabStyle.Render(label)
	}
	return tabStyle.Render(label)
}
