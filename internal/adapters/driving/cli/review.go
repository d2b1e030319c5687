package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rpascale86/nfcheck/internal/adapters/driving/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review findings in an interactive terminal UI",
	Long: `Browse run history and findings interactively.

Controls:
  ←/→      - Switch run
  ↑/↓      - Scroll findings
  a        - Toggle all findings / problems only
  r        - Refresh
  q        - Quit`,
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	// Recover panics so a crash leaves a stack trace, not a broken
	// terminal.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in review UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	model := tui.NewModel(historyService).WithContext(cmd.Context())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("review UI error: %w", err)
	}
	return nil
}
