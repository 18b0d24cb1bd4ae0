package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save server address and admin token",
	Long: `Write the server URL and admin token to the wardenctl config file so
later invocations do not need flags. The file is created with mode
0600. The token can also be supplied per-invocation through the
WARDENCTL_SERVER_TOKEN environment variable instead.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(_ *cobra.Command, _ []string) error {
	// Start from existing settings so login only overwrites what the
	// user supplies.
	loader := config.NewLoader()
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		cfg = config.Default()
	}

	reader := bufio.NewReader(os.Stdin)

	server := serverURL
	if server == "" {
		fmt.Printf("server URL [%s]: ", cfg.Server.URL)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line != "" {
			server = line
		} else {
			server = cfg.Server.URL
		}
	}

	token := adminTok
	if token == "" {
		fmt.Print("admin token: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		token = strings.TrimSpace(line)
	}
	if token == "" {
		return fmt.Errorf("admin token cannot be empty")
	}

	cfg.Server.URL = server
	cfg.Server.Token = token
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)
	return nil
}
