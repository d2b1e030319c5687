// Package driven defines the outbound ports of the core: interfaces
// the pipeline depends on, implemented by adapters (manifest reading,
// PDF location and archiving, text extraction, OCR, persistence).
package driven
