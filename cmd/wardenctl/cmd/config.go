package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/confirm"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the server configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current server configuration",
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the server configuration interactively",
	Long:  "Open the admin panel on the configuration form.",
	RunE:  runPanel,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all configuration overrides",
	Long: fmt.Sprintf(`Reset the server to the configuration from its environment, discarding
every override saved through the admin page. Type %q to confirm;
anything else aborts without sending a request.`, confirm.ResetKeyword),
	RunE: runConfigReset,
}

var configExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the server configuration to a file",
	RunE:  runConfigExport,
}

var configBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Trigger a server-side database backup",
	RunE:  runConfigBackup,
}

var (
	exportFormat string
	exportOutput string
	resetYes     bool
)

func init() {
	configExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml",
		"export format (yaml, json)")
	configExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"output file (default: stdout)")
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false,
		"skip the typed confirmation")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configBackupCmd)
	rootCmd.AddCommand(configCmd)
}

func fetchSchema(a *app) (*schema.Schema, error) {
	ctx, cancel := a.context()
	defer cancel()

	s, err := a.client.ConfigSchema(ctx)
	if err != nil {
		return nil, err
	}
	warnings, err := s.Validate()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		a.logger.Warn("config schema", "detail", w)
	}
	return s, nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	s, err := fetchSchema(a)
	if err != nil {
		return err
	}
	out, err := s.Export(schema.ExportYAML)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runConfigExport(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	s, err := fetchSchema(a)
	if err != nil {
		return err
	}
	out, err := s.Export(schema.ExportFormat(exportFormat))
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(exportOutput, out, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	fmt.Printf("exported configuration to %s\n", exportOutput)
	return nil
}

func runConfigReset(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if !resetYes {
		if err := confirm.ResetConfig().Ask(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}

	ctx, cancel := a.context()
	defer cancel()

	out := a.client.ResetConfig(ctx)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Println("configuration reset, server is using environment values")
	return nil
}

func runConfigBackup(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	out := a.client.BackupDB(ctx)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Println("database backup started")
	return nil
}
