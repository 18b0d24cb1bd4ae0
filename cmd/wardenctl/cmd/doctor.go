package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/diagnostics"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check connectivity and local environment",
	Long: `Verify that the configured server's admin API is reachable with the
configured token, and report local host metrics.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("server: %s\n", a.cfg.Server.URL)

	ctx, cancel := a.context()
	defer cancel()

	start := time.Now()
	users, err := a.client.Users(ctx)
	if err != nil {
		fmt.Println("  ✗ admin API unreachable")
		return err
	}
	fmt.Printf("  ✓ admin API reachable (%d users, %s)\n",
		len(users), time.Since(start).Round(time.Millisecond))

	s, err := a.client.ConfigSchema(ctx)
	if err != nil {
		fmt.Println("  ✗ config schema fetch failed")
		return err
	}
	warnings, err := s.Validate()
	if err != nil {
		fmt.Printf("  ✗ config schema invalid: %v\n", err)
		return err
	}
	fmt.Printf("  ✓ config schema valid (%d groups)\n", len(s.Groups()))
	for _, w := range warnings {
		fmt.Printf("    ! %s\n", w)
	}

	if a.store != nil {
		fmt.Printf("  ✓ audit log at %s\n", a.cfg.Audit.Path)
	} else {
		fmt.Println("  ○ audit log disabled")
	}

	m := diagnostics.Collect()
	fmt.Println()
	fmt.Printf("host: %s/%s\n", m.OS, m.Arch)
	if m.CPUModel != "" {
		fmt.Printf("  cpu:  %s (%d threads, load %.2f)\n", m.CPUModel, m.CPUThreads, m.LoadAvg1)
	}
	if m.MemTotalMB > 0 {
		fmt.Printf("  mem:  %.0f/%.0f MB (%.0f%%)\n", m.MemUsedMB, m.MemTotalMB, m.MemPercent)
	}
	if m.DiskTotalGB > 0 {
		fmt.Printf("  disk: %.1f/%.1f GB (%.0f%%)\n", m.DiskUsedGB, m.DiskTotalGB, m.DiskPercent)
	}
	return nil
}
