//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// Engine recognises text with tesseract via gosseract. A fresh client
// is created per call; gosseract clients are not safe for concurrent
// reuse and setup cost is negligible next to recognition itself.
type Engine struct {
	opts          Options
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a tesseract-backed OCR engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:          opts.withDefaults(),
		clientFactory: gosseract.NewClient,
	}
}

// Name identifies the engine for logs.
func (e *Engine) Name() string { return "tesseract" }

// Recognise runs OCR over PNG image bytes.
func (e *Engine) Recognise(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(e.opts.Language); err != nil {
		return "", fmt.Errorf("set language %q: %w", e.opts.Language, err)
	}
	if e.opts.TesseractPath != "" {
		if err := c.SetTessdataPrefix(e.opts.TesseractPath); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	for k, v := range e.opts.Variables {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return "", fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognise text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
