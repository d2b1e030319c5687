package driven

import (
	"context"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

// TextExtractor extracts per-page text from a PDF file.
// Implementations decide nothing about OCR; pages without a text
// layer come back with empty Text so the pipeline can fall back.
type TextExtractor interface {
	// Extract returns one PageText per page, in page order.
	Extract(ctx context.Context, path string) ([]domain.PageText, error)
}

// Rasteriser renders a single PDF page to an image for OCR.
type Rasteriser interface {
	// RenderPage renders the 1-based page to PNG bytes at the
	// configured DPI.
	RenderPage(ctx context.Context, path string, page int) ([]byte, error)
}

// OCREngine recognises text in a rendered page image.
type OCREngine interface {
	// Recognise runs OCR over PNG image bytes and returns the
	// recognised text.
	// Returns domain.ErrOCRUnavailable when no engine is compiled in.
	Recognise(ctx context.Context, image []byte) (string, error)

	// Name identifies the engine for logs.
	Name() string
}
