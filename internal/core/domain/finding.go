package domain

import "time"

// FindingStatus classifies the outcome of a single check.
type FindingStatus string

const (
	// StatusMatched means the expected value was found in the PDF.
	StatusMatched FindingStatus = "matched"

	// StatusDivergent means the PDF was read but the expected value
	// was not found in its text.
	StatusDivergent FindingStatus = "divergent"

	// StatusMissing means no PDF for the invoice number was found
	// under the source folder.
	StatusMissing FindingStatus = "missing"

	// StatusError means the invoice could not be processed (copy
	// failure, unreadable PDF, OCR unavailable).
	StatusError FindingStatus = "error"
)

// Finding records the outcome of one check for one invoice.
// A missing or errored invoice produces a single finding with an
// empty Field; a verified invoice produces one finding per field.
type Finding struct {
	// ID is the unique identifier for the finding.
	ID string

	// RunID links to the Run that produced this finding.
	RunID string

	// InvoiceNumber is the manifest invoice number.
	InvoiceNumber string

	// Field is the verified field, empty for missing/error findings.
	Field Field

	// Expected is the manifest value that was searched for.
	Expected string

	// Status is the check outcome.
	Status FindingStatus

	// Detail carries human-readable context (error text, archive
	// path, OCR note).
	Detail string

	// CreatedAt is when the finding was recorded.
	CreatedAt time.Time
}

// Problem reports whether the finding should appear in the divergence
// log.
func (f Finding) Problem() bool {
	return f.Status != StatusMatched
}
