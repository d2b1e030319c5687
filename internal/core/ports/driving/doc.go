// Package driving defines the inbound ports of the core: the
// operations the CLI and TUI invoke on the pipeline.
package driving
