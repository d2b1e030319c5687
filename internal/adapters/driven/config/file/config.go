// Package file provides the TOML configuration store for nfcheck.
// Configuration lives in config.toml inside the nfcheck config
// directory (default ~/.nfcheck).
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all tool settings.
type Config struct {
	// Paths groups the filesystem layout of a processing run.
	Paths PathsConfig `toml:"paths"`

	// Manifest groups the workbook layout.
	Manifest ManifestConfig `toml:"manifest"`

	// OCR groups the text recognition settings.
	OCR OCRConfig `toml:"ocr"`
}

// PathsConfig is the filesystem layout of a processing run.
type PathsConfig struct {
	// BaseDir anchors the relative defaults below.
	BaseDir string `toml:"base_dir"`

	// ManifestPath is the invoice manifest workbook.
	ManifestPath string `toml:"manifest"`

	// SourceDir is searched recursively for invoice PDFs.
	SourceDir string `toml:"source_dir"`

	// ArchiveDir receives the renamed PDF copies.
	ArchiveDir string `toml:"archive_dir"`

	// LogPath is the divergence log file.
	LogPath string `toml:"log"`
}

// ManifestConfig is the workbook layout.
type ManifestConfig struct {
	Sheet             string `toml:"sheet"`
	NumberColumn      string `toml:"number_column"`
	CNPJColumn        string `toml:"cnpj_column"`
	TotalAmountColumn string `toml:"total_column"`
	DescriptionColumn string `toml:"description_column"`
}

// OCRConfig is the text recognition settings.
type OCRConfig struct {
	// Language is the tesseract language code, "por" by default.
	Language string `toml:"language"`

	// TesseractPath overrides the tesseract data prefix. Only needed
	// for non-standard installs (typical on Windows).
	TesseractPath string `toml:"tesseract_path"`

	// DPI used when rasterising scanned pages.
	DPI int `toml:"dpi"`
}

// Store loads and persists the configuration file.
type Store struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.nfcheck.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".nfcheck")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		config:   defaults(configDir),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// defaults returns the configuration used when no file exists, laid
// out under baseDir.
func defaults(baseDir string) Config {
	return Config{
		Paths: PathsConfig{
			BaseDir:      baseDir,
			ManifestPath: filepath.Join(baseDir, "arquivo.xlsx"),
			SourceDir:    filepath.Join(baseDir, "PastasDasNotas"),
			ArchiveDir:   filepath.Join(baseDir, "PastaDestino"),
			LogPath:      filepath.Join(baseDir, "log_erros.txt"),
		},
		Manifest: ManifestConfig{
			Sheet:             "Notas",
			NumberColumn:      "NumeroNota",
			CNPJColumn:        "CNPJ",
			TotalAmountColumn: "ValorTotal",
			DescriptionColumn: "Descricao",
		},
		OCR: OCRConfig{
			Language: "por",
			DPI:      300,
		},
	}
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration and persists the result.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.config)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. Values absent from the
// file keep their defaults.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - defaults apply
			return nil
		}
		return err
	}

	if err := toml.Unmarshal(data, &s.config); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}
