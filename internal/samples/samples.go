// Package samples generates example data for trying the tool out: an
// invoice manifest workbook plus matching invoice PDFs with a real
// text layer.
package samples

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Invoices returns the example invoice set.
func Invoices() []domain.Invoice {
	return []domain.Invoice{
		{Number: "12345", CNPJ: "12.345.678/0001-99", TotalAmount: "1000.00", Description: "Produto A"},
		{Number: "67890", CNPJ: "98.765.432/0001-11", TotalAmount: "2500.50", Description: "Produto B"},
		{Number: "11111", CNPJ: "11.222.333/0001-44", TotalAmount: "750.00", Description: "Produto C"},
	}
}

// Generator writes the sample manifest and invoice PDFs.
type Generator struct {
	manifest driven.ManifestStore
}

// NewGenerator creates a sample data generator backed by the given
// manifest store.
func NewGenerator(manifest driven.ManifestStore) *Generator {
	return &Generator{manifest: manifest}
}

// Generate writes the manifest workbook to manifestPath and one PDF
// per invoice under sourceDir. Existing files are overwritten.
func (g *Generator) Generate(ctx context.Context, manifestPath, sourceDir string) error {
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return fmt.Errorf("create source dir: %w", err)
	}

	invoices := Invoices()
	if err := g.manifest.WriteSample(ctx, manifestPath, invoices); err != nil {
		return fmt.Errorf("write sample manifest: %w", err)
	}

	for _, inv := range invoices {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(sourceDir, fmt.Sprintf("Nota_%s.pdf", inv.Number))
		if err := WritePDF(path, inv); err != nil {
			return fmt.Errorf("write sample PDF for invoice %s: %w", inv.Number, err)
		}
	}
	return nil
}

// WritePDF writes a one-page invoice PDF whose text layer carries the
// four verified fields, one per line.
func WritePDF(path string, inv domain.Invoice) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)

	lines := []string{
		fmt.Sprintf("NumeroNota: %s", inv.Number),
		fmt.Sprintf("CNPJ: %s", inv.CNPJ),
		fmt.Sprintf("ValorTotal: %s", inv.TotalAmount),
		fmt.Sprintf("Descricao: %s", inv.Description),
	}
	for _, line := range lines {
		doc.Cell(0, 10, line)
		doc.Ln(10)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save PDF: %w", err)
	}
	return nil
}
