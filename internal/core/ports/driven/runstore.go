package driven

import (
	"context"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

// RunStore persists run history and findings.
type RunStore interface {
	// SaveRun inserts or updates a run record.
	SaveRun(ctx context.Context, run *domain.Run) error

	// SaveFindings persists findings for a run.
	SaveFindings(ctx context.Context, findings []domain.Finding) error

	// ListRuns returns runs ordered most recent first, at most limit
	// entries (limit <= 0 means no limit).
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// GetRun returns a run by ID.
	// Returns domain.ErrNotFound when the run does not exist.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// LatestRun returns the most recent run.
	// Returns domain.ErrNotFound when no runs exist.
	LatestRun(ctx context.Context) (*domain.Run, error)

	// FindingsByRun returns all findings for a run in insertion order.
	FindingsByRun(ctx context.Context, runID string) ([]domain.Finding, error)
}

// ReportSink receives the timestamped divergence log lines.
type ReportSink interface {
	// Log appends one timestamped message to the report.
	Log(message string) error

	// Close flushes and releases the sink.
	Close() error
}
