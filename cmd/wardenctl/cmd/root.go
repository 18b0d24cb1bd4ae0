package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	serverURL string
	adminTok  string
	logLevel  string
	logFormat string

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string
)

var rootCmd = &cobra.Command{
	Use:   "wardenctl",
	Short: "Terminal admin console for a Bitwarden-compatible server",
	Long: `wardenctl drives the admin API of a Bitwarden-compatible server from
the terminal: manage users, edit the live server configuration through
a schema-driven form, and run maintenance commands.

Running 'wardenctl' without arguments opens the interactive panel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Default to the interactive panel when no subcommand is given
	RunE: runPanel,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/wardenctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"admin API base URL (e.g. https://vault.example.com)")
	rootCmd.PersistentFlags().StringVar(&adminTok, "token", "",
		"admin token (prefer WARDENCTL_SERVER_TOKEN over this flag)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto",
		"log format (auto, text, json)")

	// Bind flags to viper (errors are nil when flag exists)
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("server.token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}
