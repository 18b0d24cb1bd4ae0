package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/config"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/tui"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive admin panel",
	Long: `Open the full-screen admin panel: a user list and a schema-driven
configuration form over the server's admin API. This is also what
running wardenctl without a subcommand does.`,
	RunE: runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func runPanel(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	opts := []tui.Option{tui.WithTimeout(a.cfg.Timeout)}
	if a.store != nil {
		opts = append(opts, tui.WithAuditStore(a.store))
	}

	model := tui.New(a.client, a.logger, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Surface config file edits made while the panel runs. The running
	// client keeps its credentials; the operator decides when to restart.
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	watcher, err := config.Watch(path, func(*config.Config) {
		p.Send(tui.Notice("client config changed on disk, restart to apply"))
	}, a.logger.Logger)
	if err == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running panel: %w", err)
	}
	return nil
}
