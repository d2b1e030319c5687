// Package ocr provides the text recognition engine for scanned pages.
//
// The real engine binds tesseract through gosseract and requires cgo
// plus an installed tesseract; it is selected with the "ocr" build
// tag. The default build carries a stub that reports OCR as
// unavailable, so the tool still builds and runs on machines without
// tesseract.
package ocr

// Options configures the recognition engine.
type Options struct {
	// Language is the tesseract language code ("por", "eng", ...).
	// Defaults to "por".
	Language string

	// TesseractPath overrides the tesseract binary/library prefix.
	// Empty means the system default.
	TesseractPath string

	// Variables are passed through as tesseract init variables.
	Variables map[string]string
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "por"
	}
	return o
}
