// Package raster renders PDF pages to images using the poppler
// pdftoppm utility, the same renderer the usual Python tooling wraps.
package raster

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/core/ports/driven"
)

// Ensure Poppler implements the interface.
var _ driven.Rasteriser = (*Poppler)(nil)

// Poppler shells out to pdftoppm to render single pages as PNG.
type Poppler struct {
	// Binary is the pdftoppm executable, "pdftoppm" by default.
	Binary string

	// DPI is the render resolution, 300 by default.
	DPI int
}

// NewPoppler creates a pdftoppm-backed rasteriser.
func NewPoppler(binary string, dpi int) *Poppler {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &Poppler{Binary: binary, DPI: dpi}
}

// Available reports whether the pdftoppm binary can be found.
func (p *Poppler) Available() bool {
	_, err := exec.LookPath(p.Binary)
	return err == nil
}

// RenderPage renders the 1-based page to PNG bytes.
func (p *Poppler) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	if _, err := exec.LookPath(p.Binary); err != nil {
		return nil, fmt.Errorf("%w: %s not found on PATH", domain.ErrRasteriserUnavailable, p.Binary)
	}

	tmpDir, err := os.MkdirTemp("", "nfcheck-raster-")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageArg := strconv.Itoa(page)

	cmd := exec.CommandContext(ctx, p.Binary,
		"-png",
		"-r", strconv.Itoa(p.DPI),
		"-f", pageArg,
		"-l", pageArg,
		path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, out)
	}

	rendered, err := findOutput(tmpDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(rendered)
	if err != nil {
		return nil, fmt.Errorf("read render: %w", err)
	}
	return data, nil
}

// findOutput locates the single PNG pdftoppm produced. The page
// number in the output name is zero-padded depending on the document
// size, so the name cannot be predicted directly.
func findOutput(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return "", fmt.Errorf("glob renders: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no output")
	}
	return matches[0], nil
}
