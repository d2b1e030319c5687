package driven

import (
	"context"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

// ManifestStore reads the invoice manifest workbook.
type ManifestStore interface {
	// Load reads all invoice rows from the configured sheet.
	// Returns domain.ErrEmptyManifest when the sheet has no data rows
	// and domain.ErrManifestSchema when a configured column is absent.
	Load(ctx context.Context, path string) ([]domain.Invoice, error)

	// WriteSample creates an example workbook at path with the
	// configured sheet and column layout.
	WriteSample(ctx context.Context, path string, invoices []domain.Invoice) error
}
