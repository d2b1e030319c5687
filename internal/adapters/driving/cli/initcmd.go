package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initSamples bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the working folders and configuration",
	Long: `Creates the manifest, source and archive folders from the current
configuration and writes the configuration file. With --samples, an
example manifest workbook and matching invoice PDFs are generated so
the tool can be tried out immediately.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initSamples, "samples", false,
		"generate an example manifest and invoice PDFs")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Config()

	for _, dir := range []string{cfg.Paths.SourceDir, cfg.Paths.ArchiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		cmd.Printf("Created %s\n", dir)
	}

	if err := configStore.Save(); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	cmd.Printf("Configuration written to %s\n", configStore.Path())

	if initSamples {
		if sampleGenerator == nil {
			return errors.New("sample generator not configured")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if err := sampleGenerator.Generate(ctx, cfg.Paths.ManifestPath, cfg.Paths.SourceDir); err != nil {
			return fmt.Errorf("generate samples: %w", err)
		}
		cmd.Printf("Sample manifest written to %s\n", cfg.Paths.ManifestPath)
		cmd.Printf("Sample invoice PDFs written to %s\n", cfg.Paths.SourceDir)
	}

	cmd.Println("Ready. Run 'nfcheck process' to verify invoices.")
	return nil
}
