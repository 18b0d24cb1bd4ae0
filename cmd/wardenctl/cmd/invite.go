package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Invite a new user by email",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvite,
}

func init() {
	rootCmd.AddCommand(inviteCmd)
}

func runInvite(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	out := a.client.Invite(ctx, args[0])
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Printf("invited %s\n", args[0])
	return nil
}
