package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Defaults(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, filepath.Join(dir, "arquivo.xlsx"), cfg.Paths.ManifestPath)
	assert.Equal(t, filepath.Join(dir, "PastasDasNotas"), cfg.Paths.SourceDir)
	assert.Equal(t, filepath.Join(dir, "PastaDestino"), cfg.Paths.ArchiveDir)
	assert.Equal(t, filepath.Join(dir, "log_erros.txt"), cfg.Paths.LogPath)
	assert.Equal(t, "Notas", cfg.Manifest.Sheet)
	assert.Equal(t, "NumeroNota", cfg.Manifest.NumberColumn)
	assert.Equal(t, "por", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
}

func TestUpdate_Persists(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Update(func(c *Config) {
		c.OCR.Language = "eng"
		c.Manifest.Sheet = "Planilha"
	}))

	// Reopen and check the values survived.
	reopened, err := NewStore(dir)
	require.NoError(t, err)

	cfg := reopened.Config()
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, "Planilha", cfg.Manifest.Sheet)
	// Untouched values keep their defaults.
	assert.Equal(t, "NumeroNota", cfg.Manifest.NumberColumn)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[ocr]\nlanguage = \"spa\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	s, err := NewStore(dir)
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, "spa", cfg.OCR.Language)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, "Notas", cfg.Manifest.Sheet)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), s.Path())
}
