// Package services contains the core pipeline logic: the processor
// orchestrating manifest rows through locate, archive, extract and
// verify steps, and the field verifier.
package services
