package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

var findingsAll bool

var findingsCmd = &cobra.Command{
	Use:   "findings [run-id]",
	Short: "Show findings for a run",
	Long: `Shows the verification findings for a run. Without a run ID the
latest run is used. By default only problems are shown; use --all to
include matched fields.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFindings,
}

func init() {
	findingsCmd.Flags().BoolVarP(&findingsAll, "all", "a", false,
		"include matched fields, not just problems")
	rootCmd.AddCommand(findingsCmd)
}

func runFindings(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	runID := ""
	if len(args) > 0 {
		runID = args[0]
	}

	findings, err := historyService.Findings(cmd.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no such run; see 'nfcheck runs'")
		}
		return fmt.Errorf("list findings: %w", err)
	}

	colour := term.IsTerminal(int(os.Stdout.Fd()))

	shown := 0
	for _, f := range findings {
		if !findingsAll && !f.Problem() {
			continue
		}
		shown++

		cmd.Printf("[%s] nota %s  %s  %s",
			formatWhen(f.CreatedAt), f.InvoiceNumber, f.Field, statusLabel(f.Status, colour))
		if f.Detail != "" {
			cmd.Printf("  %s", f.Detail)
		}
		cmd.Println()
	}

	if shown == 0 {
		if findingsAll {
			cmd.Println("No findings recorded for this run.")
		} else {
			cmd.Println("No problems found. Use --all to see matched fields.")
		}
	}
	return nil
}
