package driving

import (
	"context"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

// RunStatus is a snapshot of an in-flight or finished run, polled by
// the CLI progress display.
type RunStatus struct {
	// RunID identifies the run being processed.
	RunID string

	// Running reports whether the run is still active.
	Running bool

	// Total is the number of manifest rows.
	Total int

	// Processed counts rows handled so far.
	Processed int

	// Divergent, Missing and Errors count problem rows so far.
	Divergent int
	Missing   int
	Errors    int
}

// Processor drives the invoice verification pipeline.
type Processor interface {
	// Process runs the full pipeline over the manifest and returns
	// the completed run.
	// Returns domain.ErrRunInProgress when a run is already active.
	Process(ctx context.Context) (*domain.Run, error)

	// Status returns the current run status.
	Status(ctx context.Context) (*RunStatus, error)
}

// RunHistory exposes persisted runs and findings to the CLI and TUI.
type RunHistory interface {
	// Runs returns run history, most recent first.
	Runs(ctx context.Context, limit int) ([]domain.Run, error)

	// Findings returns findings for a run; empty runID means the
	// latest run.
	Findings(ctx context.Context, runID string) ([]domain.Finding, error)
}
