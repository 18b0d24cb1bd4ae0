package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/confirm"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage server users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  runUsersList,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a user and all their data",
	Long: `Delete a user. This is irreversible, so the user's email address must
be retyped exactly to confirm; anything else aborts without sending a
request.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersDelete,
}

var usersDeauthCmd = &cobra.Command{
	Use:   "deauth <email>",
	Short: "Deauthorize all sessions of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDeauth,
}

var usersRemove2FACmd = &cobra.Command{
	Use:   "remove-2fa <email>",
	Short: "Remove all two-factor providers from a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersRemove2FA,
}

var deleteYes bool

func init() {
	usersDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false,
		"skip the retype-the-email confirmation")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersDeauthCmd)
	usersCmd.AddCommand(usersRemove2FACmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersList(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	users, err := a.client.Users(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\t2FA\tATTACHMENTS")
	for _, u := range users {
		twoFactor := "-"
		if u.TwoFactorEnabled {
			twoFactor = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d (%s)\n",
			u.Email, u.Name, twoFactor, u.AttachmentCount, u.AttachmentSize)
	}
	return w.Flush()
}

func runUsersDelete(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	user, err := a.findUser(ctx, args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		if err := confirm.DeleteUser(user.Email).Ask(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}

	out := a.client.DeleteUser(ctx, user.ID)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", user.Email)
	return nil
}

func runUsersDeauth(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	user, err := a.findUser(ctx, args[0])
	if err != nil {
		return err
	}

	out := a.client.DeauthorizeSessions(ctx, user.ID)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Printf("deauthorized all sessions for %s\n", user.Email)
	return nil
}

func runUsersRemove2FA(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := a.context()
	defer cancel()

	user, err := a.findUser(ctx, args[0])
	if err != nil {
		return err
	}

	out := a.client.RemoveTwoFactor(ctx, user.ID)
	if err := a.finish(ctx, out); err != nil {
		return err
	}
	fmt.Printf("removed two-factor providers for %s\n", user.Email)
	return nil
}
