//go:build !ocr

package ocr

import (
	"context"
	"fmt"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine is the no-OCR fallback compiled when the "ocr" build tag is
// absent. Every recognition attempt fails with a descriptive error so
// scanned invoices surface as error findings instead of aborting the
// run.
type Engine struct {
	opts Options
}

// NewEngine constructs the stub engine.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Name identifies the engine for logs.
func (e *Engine) Name() string { return "none" }

// Recognise always fails: no OCR engine is compiled in.
func (e *Engine) Recognise(_ context.Context, _ []byte) (string, error) {
	return "", fmt.Errorf("%w: rebuild with -tags ocr and install tesseract "+
		"(apt install tesseract-ocr / brew install tesseract)", domain.ErrOCRUnavailable)
}
