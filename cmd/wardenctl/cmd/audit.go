package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recently executed admin commands",
	Long: `List the most recent commands from the local audit log, newest first.
The log records only what this machine sent, not server-side history.`,
	RunE: runAudit,
}

var auditLimit int

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20,
		"maximum number of entries to show")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return fmt.Errorf("audit log is disabled (set audit.enabled: true)")
	}

	ctx, cancel := a.context()
	defer cancel()

	entries, err := a.store.Recent(ctx, auditLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no commands recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tENDPOINT\tRESULT\tDETAIL")
	for _, e := range entries {
		result := "ok"
		if !e.Success {
			result = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Endpoint, result, e.Detail)
	}
	return w.Flush()
}
