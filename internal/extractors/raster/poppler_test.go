package raster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpascale86/nfcheck/internal/core/domain"
)

func TestNewPoppler_Defaults(t *testing.T) {
	p := NewPoppler("", 0)
	assert.Equal(t, "pdftoppm", p.Binary)
	assert.Equal(t, 300, p.DPI)

	p = NewPoppler("/opt/poppler/bin/pdftoppm", 150)
	assert.Equal(t, "/opt/poppler/bin/pdftoppm", p.Binary)
	assert.Equal(t, 150, p.DPI)
}

func TestAvailable_MissingBinary(t *testing.T) {
	p := NewPoppler("definitely-not-a-real-binary-name", 0)
	assert.False(t, p.Available())
}

func TestRenderPage_MissingBinary(t *testing.T) {
	p := NewPoppler("definitely-not-a-real-binary-name", 0)

	_, err := p.RenderPage(context.Background(), "a.pdf", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRasteriserUnavailable)
}

func TestFindOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page-01.png"), []byte("png"), 0o644))

	path, err := findOutput(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page-01.png"), path)
}

func TestFindOutput_Empty(t *testing.T) {
	_, err := findOutput(t.TempDir())
	assert.Error(t, err)
}
