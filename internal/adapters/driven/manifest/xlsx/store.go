// Package xlsx implements the manifest store over Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ManifestStore = (*Store)(nil)

// Columns maps manifest fields to spreadsheet column headers.
type Columns struct {
	Number      string
	CNPJ        string
	TotalAmount string
	Description string
}

// DefaultColumns returns the conventional header names.
func DefaultColumns() Columns {
	return Columns{
		Number:      "NumeroNota",
		CNPJ:        "CNPJ",
		TotalAmount: "ValorTotal",
		Description: "Descricao",
	}
}

// Store reads and writes invoice manifest workbooks.
type Store struct {
	sheet   string
	columns Columns
}

// New creates a manifest store for the given sheet and columns.
// Empty sheet defaults to "Notas"; zero columns default to the
// conventional names.
func New(sheet string, columns Columns) *Store {
	if sheet == "" {
		sheet = "Notas"
	}
	if columns == (Columns{}) {
		columns = DefaultColumns()
	}
	return &Store{sheet: sheet, columns: columns}
}

// Load reads all invoice rows from the configured sheet.
func (s *Store) Load(ctx context.Context, path string) ([]domain.Invoice, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", s.sheet, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyManifest
	}

	idx, err := s.headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var invoices []domain.Invoice
	for i, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		inv := domain.Invoice{
			Number:      cell(row, idx[s.columns.Number]),
			CNPJ:        cell(row, idx[s.columns.CNPJ]),
			TotalAmount: cell(row, idx[s.columns.TotalAmount]),
			Description: cell(row, idx[s.columns.Description]),
			RowIndex:    i + 2, // 1-based, after the header
		}
		if inv.Number == "" && inv.CNPJ == "" && inv.TotalAmount == "" && inv.Description == "" {
			continue // skip fully blank rows
		}
		invoices = append(invoices, inv)
	}

	if len(invoices) == 0 {
		return nil, domain.ErrEmptyManifest
	}
	return invoices, nil
}

// WriteSample creates an example workbook with the configured layout.
func (s *Store) WriteSample(ctx context.Context, path string, invoices []domain.Invoice) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(s.sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", s.sheet, err)
	}
	// Drop the default sheet so the workbook only carries ours.
	if s.sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
	}

	header := []any{s.columns.Number, s.columns.CNPJ, s.columns.TotalAmount, s.columns.Description}
	if err := s.writeRow(f, 1, header); err != nil {
		return err
	}

	for i, inv := range invoices {
		row := []any{inv.Number, inv.CNPJ, inv.TotalAmount, inv.Description}
		if err := s.writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (s *Store) writeRow(f *excelize.File, row int, values []any) error {
	cellRef, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(s.sheet, cellRef, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// headerIndex maps configured column names to their positions in the
// header row.
func (s *Store) headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{s.columns.Number, s.columns.CNPJ, s.columns.TotalAmount, s.columns.Description} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("%w: column %q not found in sheet %q",
				domain.ErrManifestSchema, required, s.sheet)
		}
	}
	return idx, nil
}

// cell returns the trimmed value at position i, or "" when the row is
// shorter (trailing empty cells are omitted by excelize).
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
