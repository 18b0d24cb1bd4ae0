package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Force all clients to resync",
	Long: `Bump the server-side revision so every connected client performs a
full sync on its next poll.`,
	RunE: runResync,
}

func init() {
	rootCmd.AddCommand(resyncCmd)
}

func runResync(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	out := a.client.UpdateRevision(ctx)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Println("revision bumped, clients will resync")
	return nil
}
