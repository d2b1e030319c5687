package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

func sampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{Number: "12345", CNPJ: "12.345.678/0001-99", TotalAmount: "1000.00", Description: "Produto A"},
		{Number: "67890", CNPJ: "98.765.432/0001-11", TotalAmount: "2500.50", Description: "Produto B"},
		{Number: "11111", CNPJ: "11.222.333/0001-44", TotalAmount: "750.00", Description: "Produto C"},
	}
}

func TestWriteSampleAndLoad(t *testing.T) {
	store := New("", Columns{})
	path := filepath.Join(t.TempDir(), "arquivo.xlsx")
	ctx := context.Background()

	require.NoError(t, store.WriteSample(ctx, path, sampleInvoices()))

	invoices, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, invoices, 3)

	assert.Equal(t, "12345", invoices[0].Number)
	assert.Equal(t, "12.345.678/0001-99", invoices[0].CNPJ)
	assert.Equal(t, "1000.00", invoices[0].TotalAmount)
	assert.Equal(t, "Produto A", invoices[0].Description)
	assert.Equal(t, 2, invoices[0].RowIndex)
	assert.Equal(t, "11111", invoices[2].Number)
}

func TestLoad_MissingFile(t *testing.T) {
	store := New("Notas", DefaultColumns())

	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Notas")
	require.NoError(t, err)
	header := []any{"NumeroNota", "CNPJ"} // ValorTotal and Descricao absent
	require.NoError(t, f.SetSheetRow("Notas", "A1", &header))
	row := []any{"12345", "12.345.678/0001-99"}
	require.NoError(t, f.SetSheetRow("Notas", "A2", &row))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := New("Notas", DefaultColumns())
	_, err = store.Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrManifestSchema)
}

func TestLoad_EmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Notas")
	require.NoError(t, err)
	header := []any{"NumeroNota", "CNPJ", "ValorTotal", "Descricao"}
	require.NoError(t, f.SetSheetRow("Notas", "A1", &header))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := New("Notas", DefaultColumns())
	_, err = store.Load(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrEmptyManifest)
}

func TestLoad_SkipsBlankRows(t *testing.T) {
	store := New("Notas", DefaultColumns())
	path := filepath.Join(t.TempDir(), "arquivo.xlsx")
	ctx := context.Background()

	require.NoError(t, store.WriteSample(ctx, path, sampleInvoices()))

	// Append a blank row after the data.
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	blank := []any{"", "", "", ""}
	require.NoError(t, f.SetSheetRow("Notas", "A5", &blank))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	invoices, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Len(t, invoices, 3)
}

func TestLoad_CustomColumns(t *testing.T) {
	cols := Columns{Number: "Nota", CNPJ: "Cnpj", TotalAmount: "Total", Description: "Desc"}
	store := New("Planilha", cols)
	path := filepath.Join(t.TempDir(), "custom.xlsx")
	ctx := context.Background()

	require.NoError(t, store.WriteSample(ctx, path, sampleInvoices()[:1]))

	invoices, err := store.Load(ctx, path)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "12345", invoices[0].Number)
}
