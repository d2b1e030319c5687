package domain

// Invoice represents one row of the invoice manifest: the values the
// accounting team expects to find inside the corresponding PDF.
type Invoice struct {
	// Number is the invoice number (numero da nota). It is also the
	// key used to locate the PDF on disk.
	Number string

	// CNPJ is the issuer's tax registration, usually formatted
	// "12.345.678/0001-99" in the manifest.
	CNPJ string

	// TotalAmount is the invoice total as written in the manifest,
	// e.g. "1000.00" or "2.500,50".
	TotalAmount string

	// Description is the free-text description of the goods.
	Description string

	// RowIndex is the 1-based row in the manifest sheet, kept for
	// error messages.
	RowIndex int
}

// Field identifies one verifiable invoice field.
type Field string

// Fields verified against the extracted PDF text.
const (
	FieldNumber      Field = "NumeroNota"
	FieldCNPJ        Field = "CNPJ"
	FieldTotalAmount Field = "ValorTotal"
	FieldDescription Field = "Descricao"
)

// VerifiedFields lists the fields checked for every located invoice,
// in report order.
func VerifiedFields() []Field {
	return []Field{FieldNumber, FieldCNPJ, FieldTotalAmount, FieldDescription}
}

// ExpectedValue returns the manifest value for a field.
func (i Invoice) ExpectedValue(f Field) string {
	switch f {
	case FieldNumber:
		return i.Number
	case FieldCNPJ:
		return i.CNPJ
	case FieldTotalAmount:
		return i.TotalAmount
	case FieldDescription:
		return i.Description
	default:
		return ""
	}
}

// PageText is the extracted text of a single PDF page.
type PageText struct {
	// PageNumber is 1-based.
	PageNumber int

	// Text is the extracted content. Empty when the page has no text
	// layer and OCR was not attempted or produced nothing.
	Text string

	// OCR reports whether the text came from OCR rather than the
	// PDF text layer.
	OCR bool
}
