// Package domain contains the core business entities for invoice
// verification: manifest rows, findings, runs and domain errors.
// It has no dependencies on adapters or external libraries.
package domain
