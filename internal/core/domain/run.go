package domain

import "time"

// Run represents one execution of the processing pipeline over the
// whole manifest.
type Run struct {
	// ID is the unique identifier for the run.
	ID string

	// ManifestPath is the workbook the run was driven by.
	ManifestPath string

	// StartedAt and FinishedAt bound the execution.
	StartedAt  time.Time
	FinishedAt time.Time

	// Processed counts manifest rows handled (including missing and
	// errored ones).
	Processed int

	// Matched counts invoices whose every field matched.
	Matched int

	// Divergent counts invoices with at least one divergent field.
	Divergent int

	// Missing counts invoices whose PDF was not found.
	Missing int

	// Errors counts invoices that failed to process.
	Errors int
}

// Duration returns the wall-clock duration of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Clean reports whether the run completed without divergences,
// missing invoices or errors.
func (r Run) Clean() bool {
	return r.Divergent == 0 && r.Missing == 0 && r.Errors == 0
}
