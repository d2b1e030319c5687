package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driving"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process all invoices in the manifest",
	Long: `Reads the manifest workbook, locates each invoice PDF under the
source folder, archives a renamed copy and verifies the manifest
fields against the PDF text. Divergences go to the error log and the
run history.`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	if processorService == nil {
		return errors.New("processor service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Println("Processing invoices...")

	run, err := processWithProgress(ctx, cmd, processorService)
	if err != nil {
		if errors.Is(err, domain.ErrRunInProgress) {
			return errors.New("a run is already in progress")
		}
		return fmt.Errorf("processing failed: %w", err)
	}

	printRunSummary(cmd, run)
	return nil
}

// processWithProgress runs the pipeline while displaying progress.
func processWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	processor driving.Processor,
) (*domain.Run, error) {
	type result struct {
		run *domain.Run
		err error
	}
	resCh := make(chan result, 1)
	go func() {
		run, err := processor.Process(ctx)
		resCh <- result{run, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case res := <-resCh:
			if res.run != nil {
				cmd.Printf("\rProcessed %d invoices\n", res.run.Processed)
			}
			return res.run, res.err
		case <-ticker.C:
			// Check progress (ignore status error - best effort)
			status, statusErr := processor.Status(ctx)
			if statusErr == nil && status != nil && status.Processed > lastCount {
				cmd.Printf("\rProcessing... %d/%d invoices", status.Processed, status.Total)
				lastCount = status.Processed
			}
		}
	}
}

func printRunSummary(cmd *cobra.Command, run *domain.Run) {
	if run == nil {
		return
	}

	cmd.Println()
	cmd.Printf("Run %s finished in %s\n", run.ID, run.Duration().Round(time.Millisecond))
	cmd.Printf("  Processed: %d\n", run.Processed)
	cmd.Printf("  Matched:   %d\n", run.Matched)
	cmd.Printf("  Divergent: %d\n", run.Divergent)
	cmd.Printf("  Missing:   %d\n", run.Missing)
	cmd.Printf("  Errors:    %d\n", run.Errors)

	if run.Clean() {
		cmd.Println("All invoices verified successfully.")
	} else {
		cmd.Println("Problems were found. See 'nfcheck findings' or the error log.")
	}
}
