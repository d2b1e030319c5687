package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyManifest indicates the manifest sheet has no invoice rows.
	ErrEmptyManifest = errors.New("manifest is empty")

	// ErrManifestSchema indicates the manifest sheet is missing one of
	// the configured columns.
	ErrManifestSchema = errors.New("manifest schema mismatch")

	// ErrUnreadablePDF indicates a PDF yielded no text from either the
	// text layer or OCR.
	ErrUnreadablePDF = errors.New("PDF is empty or unreadable")

	// ErrOCRUnavailable indicates the OCR engine is not compiled in or
	// the tesseract installation is missing.
	// Scanned pages cannot be verified without it.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrRasteriserUnavailable indicates the external PDF rasteriser
	// (pdftoppm) was not found on PATH.
	ErrRasteriserUnavailable = errors.New("PDF rasteriser unavailable")

	// ErrRunInProgress indicates a processing run is already active.
	ErrRunInProgress = errors.New("run in progress")
)
