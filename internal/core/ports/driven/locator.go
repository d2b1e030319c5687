package driven

import "context"

// InvoiceLocator finds invoice PDFs on disk.
type InvoiceLocator interface {
	// Find returns the path of the first PDF under root whose file
	// name contains the invoice number.
	// Returns domain.ErrNotFound when no candidate exists.
	Find(ctx context.Context, root, invoiceNumber string) (string, error)
}

// Archiver copies located PDFs into the archive folder under their
// canonical name.
type Archiver interface {
	// Archive copies src into destDir as "Nota_<numero>.pdf" and
	// returns the destination path.
	Archive(ctx context.Context, src, destDir, invoiceNumber string) (string, error)
}
