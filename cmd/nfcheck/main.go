// Command nfcheck verifies invoice PDFs against a manifest workbook.
package main

import (
	"fmt"
	"os"

	"github.com/rpascale86/nfcheck/internal/adapters/driven/archive"
	"github.com/rpascale86/nfcheck/internal/adapters/driven/config/file"
	"github.com/rpascale86/nfcheck/internal/adapters/driven/manifest/xlsx"
	"github.com/rpascale86/nfcheck/internal/adapters/driven/report"
	"github.com/rpascale86/nfcheck/internal/adapters/driven/storage/sqlite"
	"github.com/rpascale86/nfcheck/internal/adapters/driving/cli"
	"github.com/rpascale86/nfcheck/internal/core/services"
	"github.com/rpascale86/nfcheck/internal/extractors"
	"github.com/rpascale86/nfcheck/internal/extractors/ocr"
	"github.com/rpascale86/nfcheck/internal/extractors/pdftext"
	"github.com/rpascale86/nfcheck/internal/extractors/raster"
	"github.com/rpascale86/nfcheck/internal/locator"
	"github.com/rpascale86/nfcheck/internal/samples"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nfcheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --config-dir (or NFCHECK_CONFIG_DIR) overrides ~/.nfcheck; it
	// must be known before the services are built.
	configStore, err := file.NewStore(cli.ConfigDir(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := configStore.Config()

	runStore, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer runStore.Close()

	reportSink, err := report.Open(cfg.Paths.LogPath)
	if err != nil {
		return fmt.Errorf("open error log %s: %w", cfg.Paths.LogPath, err)
	}
	defer reportSink.Close()

	manifestStore := xlsx.New(cfg.Manifest.Sheet, xlsx.Columns{
		Number:      cfg.Manifest.NumberColumn,
		CNPJ:        cfg.Manifest.CNPJColumn,
		TotalAmount: cfg.Manifest.TotalAmountColumn,
		Description: cfg.Manifest.DescriptionColumn,
	})

	extractor := extractors.NewWithOCR(
		pdftext.New(),
		raster.NewPoppler("", cfg.OCR.DPI),
		ocr.NewEngine(ocr.Options{
			Language:      cfg.OCR.Language,
			TesseractPath: cfg.OCR.TesseractPath,
		}),
	)

	processor := services.NewProcessor(
		services.Options{
			ManifestPath: cfg.Paths.ManifestPath,
			SourceDir:    cfg.Paths.SourceDir,
			ArchiveDir:   cfg.Paths.ArchiveDir,
		},
		manifestStore,
		locator.New(),
		archive.NewCopier(),
		extractor,
		runStore,
		reportSink,
	)

	cli.SetServices(cli.Services{
		Processor: processor,
		History:   processor,
		Config:    configStore,
		Samples:   samples.NewGenerator(manifestStore),
	})

	cli.Execute()
	return nil
}
