// Package extractors composes the PDF text-layer extractor with the
// OCR fallback used for scanned pages.
package extractors

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
	"github.com/rpascale86/nfcheck/internal/logger"
)

// Ensure WithOCR implements the interface.
var _ driven.TextExtractor = (*WithOCR)(nil)

// WithOCR wraps a text-layer extractor: pages whose text layer is
// blank are rendered to an image and run through the OCR engine.
type WithOCR struct {
	layer      driven.TextExtractor
	rasteriser driven.Rasteriser
	engine     driven.OCREngine
}

// NewWithOCR composes the extractor with OCR fallback.
func NewWithOCR(layer driven.TextExtractor, rasteriser driven.Rasteriser, engine driven.OCREngine) *WithOCR {
	return &WithOCR{layer: layer, rasteriser: rasteriser, engine: engine}
}

// Extract returns one PageText per page; scanned pages carry OCR text.
func (w *WithOCR) Extract(ctx context.Context, path string) ([]domain.PageText, error) {
	pages, err := w.layer.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	for i, page := range pages {
		if strings.TrimSpace(page.Text) != "" {
			continue
		}

		logger.Debug("page %d of %s has no text layer, trying OCR with %s",
			page.PageNumber, path, w.engine.Name())

		text, err := w.recognisePage(ctx, path, page.PageNumber)
		if err != nil {
			return nil, fmt.Errorf("OCR page %d: %w", page.PageNumber, err)
		}
		pages[i].Text = text
		pages[i].OCR = true
	}
	return pages, nil
}

// recognisePage renders, cleans up and recognises one page.
func (w *WithOCR) recognisePage(ctx context.Context, path string, pageNum int) (string, error) {
	img, err := w.rasteriser.RenderPage(ctx, path, pageNum)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	cleaned, err := prepare(img)
	if err != nil {
		// Recognise the raw render rather than failing the page.
		logger.Warn("image cleanup failed for page %d of %s: %v", pageNum, path, err)
		cleaned = img
	}

	return w.engine.Recognise(ctx, cleaned)
}

// prepare converts the rendered page to greyscale and raises the
// contrast, which measurably improves tesseract accuracy on low
// quality scans.
func prepare(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode render: %w", err)
	}

	cleaned := imaging.AdjustContrast(imaging.Grayscale(img), 10)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cleaned); err != nil {
		return nil, fmt.Errorf("encode cleaned image: %w", err)
	}
	return buf.Bytes(), nil
}
