// Package locator finds invoice PDFs under the source folder tree.
package locator

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
	"github.com/rpascale86/nfcheck/internal/logger"
)

// Ensure Filesystem implements the interface.
var _ driven.InvoiceLocator = (*Filesystem)(nil)

// Filesystem locates invoice PDFs by walking a directory tree.
// A file matches when its name contains the invoice number and has a
// ".pdf" extension, case-insensitive.
type Filesystem struct{}

// New creates a filesystem locator.
func New() *Filesystem {
	return &Filesystem{}
}

// errFound aborts the walk early once a match is hit.
var errFound = fmt.Errorf("found")

// Find returns the path of the first matching PDF under root.
// The walk is depth-first in lexical order, so the result is
// deterministic for a given tree.
func (l *Filesystem) Find(ctx context.Context, root, invoiceNumber string) (string, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return "", domain.ErrInvalidInput
	}

	var match string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subfolder: log and keep walking.
			logger.Warn("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if strings.Contains(name, invoiceNumber) && strings.EqualFold(filepath.Ext(name), ".pdf") {
			match = path
			return errFound
		}
		return nil
	})

	switch {
	case err == errFound: //nolint:errorlint // sentinel used only here
		return match, nil
	case err != nil:
		return "", fmt.Errorf("walk %s: %w", root, err)
	default:
		return "", domain.ErrNotFound
	}
}
