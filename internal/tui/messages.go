package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/adminapi"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// viewLoadedMsg carries a full view snapshot: users and config schema,
// fetched together on every (re)load.
type viewLoadedMsg struct {
	users    []adminapi.User
	schema   *schema.Schema
	warnings []string
	err      error
}

// outcomeMsg reports one dispatched command. Receiving it always
// triggers exactly one view reload, success or failure.
type outcomeMsg struct {
	outcome        adminapi.Outcome
	successMessage string
	failureMessage string
}

// statusMsg sets the status line without any other effect.
type statusMsg string

// Notice builds a status-line message for delivery from outside the
// program loop, e.g. a config file watcher.
func Notice(text string) tea.Msg {
	return statusMsg(text)
}

// copiedMsg reports a clipboard copy result.
type copiedMsg struct {
	what string
	err  error
}

// reloadCmd fetches users and schema concurrently.
func (m *Model) reloadCmd() tea.Cmd {
	client := m.client
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			users []adminapi.User
			sch   *schema.Schema
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			users, err = client.Users(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			sch, err = client.ConfigSchema(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return viewLoadedMsg{err: err}
		}

		warnings, err := sch.Validate()
		if err != nil {
			return viewLoadedMsg{err: err}
		}
		return viewLoadedMsg{users: users, schema: sch, warnings: warnings}
	}
}

// dispatchCmd runs one command against the backend. The outcome message
// owns the follow-up reload.
func (m *Model) dispatchCmd(successMessage, failureMessage string, run func(context.Context) adminapi.Outcome) tea.Cmd {
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return outcomeMsg{
			outcome:        run(ctx),
			successMessage: successMessage,
			failureMessage: failureMessage,
		}
	}
}
