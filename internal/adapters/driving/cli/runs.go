package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List processing run history",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	runs, err := historyService.Runs(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet. Run 'nfcheck process' first.")
		return nil
	}

	cmd.Printf("%-36s  %-19s  %9s  %9s  %7s  %6s\n",
		"RUN", "STARTED", "PROCESSED", "DIVERGENT", "MISSING", "ERRORS")
	for _, run := range runs {
		cmd.Printf("%-36s  %-19s  %9d  %9d  %7d  %6d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Processed, run.Divergent, run.Missing, run.Errors)
	}
	return nil
}

// statusLabel formats a finding status, coloured when the output is a
// terminal.
func statusLabel(status domain.FindingStatus, colour bool) string {
	label := string(status)
	if !colour {
		return label
	}

	switch status {
	case domain.StatusMatched:
		return "\x1b[32m" + label + "\x1b[0m"
	case domain.StatusDivergent:
		return "\x1b[31m" + label + "\x1b[0m"
	case domain.StatusMissing:
		return "\x1b[33m" + label + "\x1b[0m"
	case domain.StatusError:
		return "\x1b[35m" + label + "\x1b[0m"
	default:
		return label
	}
}

func formatWhen(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
