// Package archive copies located invoice PDFs into the archive folder
// under their canonical name.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Copier implements the interface.
var _ driven.Archiver = (*Copier)(nil)

// Copier is a filesystem Archiver.
type Copier struct{}

// NewCopier creates a filesystem archiver.
func NewCopier() *Copier {
	return &Copier{}
}

// Archive copies src into destDir as "Nota_<numero>.pdf", creating
// destDir if needed, and returns the destination path. Timestamps of
// the source file are preserved.
func (c *Copier) Archive(ctx context.Context, src, destDir, invoiceNumber string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	dest := filepath.Join(destDir, CanonicalName(invoiceNumber))
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// CanonicalName returns the archive file name for an invoice number.
func CanonicalName(invoiceNumber string) string {
	return fmt.Sprintf("Nota_%s.pdf", invoiceNumber)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}

	// Preserve the source timestamps, like cp -p.
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve timestamps: %w", err)
	}
	return nil
}
