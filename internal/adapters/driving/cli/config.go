package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rpascale86/nfcheck/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and saves the file.

Available keys:
  paths.manifest       manifest workbook path
  paths.source_dir     folder searched for invoice PDFs
  paths.archive_dir    folder receiving renamed copies
  paths.log            divergence log file
  manifest.sheet       worksheet name
  ocr.language         tesseract language code
  ocr.tesseract_path   tesseract data prefix
  ocr.dpi              render resolution for scanned pages`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	cfg := configStore.Config()

	var value string
	switch key {
	case "paths.manifest":
		value = cfg.Paths.ManifestPath
	case "paths.source_dir":
		value = cfg.Paths.SourceDir
	case "paths.archive_dir":
		value = cfg.Paths.ArchiveDir
	case "paths.log":
		value = cfg.Paths.LogPath
	case "manifest.sheet":
		value = cfg.Manifest.Sheet
	case "ocr.language":
		value = cfg.OCR.Language
	case "ocr.tesseract_path":
		value = cfg.OCR.TesseractPath
	case "ocr.dpi":
		value = strconv.Itoa(cfg.OCR.DPI)
	default:
		return fmt.Errorf("unknown key %q; see 'nfcheck config set --help'", key)
	}

	cmd.Println(value)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Config()

	cmd.Printf("Configuration file: %s\n\n", configStore.Path())

	cmd.Println("[paths]")
	cmd.Printf("  manifest:    %s\n", cfg.Paths.ManifestPath)
	cmd.Printf("  source_dir:  %s\n", cfg.Paths.SourceDir)
	cmd.Printf("  archive_dir: %s\n", cfg.Paths.ArchiveDir)
	cmd.Printf("  log:         %s\n", cfg.Paths.LogPath)
	cmd.Println()

	cmd.Println("[manifest]")
	cmd.Printf("  sheet:   %s\n", cfg.Manifest.Sheet)
	cmd.Printf("  columns: %s, %s, %s, %s\n",
		cfg.Manifest.NumberColumn, cfg.Manifest.CNPJColumn,
		cfg.Manifest.TotalAmountColumn, cfg.Manifest.DescriptionColumn)
	cmd.Println()

	cmd.Println("[ocr]")
	cmd.Printf("  language: %s\n", cfg.OCR.Language)
	if cfg.OCR.TesseractPath != "" {
		cmd.Printf("  tesseract_path: %s\n", cfg.OCR.TesseractPath)
	}
	cmd.Printf("  dpi: %d\n", cfg.OCR.DPI)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if !knownConfigKey(key) {
		return fmt.Errorf("unknown key %q; see 'nfcheck config set --help'", key)
	}

	var dpi int
	if key == "ocr.dpi" {
		parsed, convErr := strconv.Atoi(value)
		if convErr != nil || parsed <= 0 {
			return fmt.Errorf("invalid DPI %q: must be a positive integer", value)
		}
		dpi = parsed
	}

	err := configStore.Update(func(cfg *file.Config) {
		switch key {
		case "paths.manifest":
			cfg.Paths.ManifestPath = value
		case "paths.source_dir":
			cfg.Paths.SourceDir = value
		case "paths.archive_dir":
			cfg.Paths.ArchiveDir = value
		case "paths.log":
			cfg.Paths.LogPath = value
		case "manifest.sheet":
			cfg.Manifest.Sheet = value
		case "ocr.language":
			cfg.OCR.Language = value
		case "ocr.tesseract_path":
			cfg.OCR.TesseractPath = value
		case "ocr.dpi":
			cfg.OCR.DPI = dpi
		}
	})
	if err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func knownConfigKey(key string) bool {
	switch key {
	case "paths.manifest", "paths.source_dir", "paths.archive_dir", "paths.log",
		"manifest.sheet", "ocr.language", "ocr.tesseract_path", "ocr.dpi":
		return true
	}
	return false
}
