// Package cli implements the nfcheck command line interface.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpascale86/nfcheck/internal/adapters/driven/config/file"
	"github.com/rpascale86/nfcheck/internal/core/ports/driving"
	"github.com/rpascale86/nfcheck/internal/logger"
	"github.com/rpascale86/nfcheck/internal/samples"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	processorService driving.Processor
	historyService   driving.RunHistory
	configStore      *file.Store
	sampleGenerator  *samples.Generator
)

// Services bundles everything the commands need.
type Services struct {
	Processor driving.Processor
	History   driving.RunHistory
	Config    *file.Store
	Samples   *samples.Generator
}

// SetServices wires the service implementations into the commands.
func SetServices(s Services) {
	processorService = s.Processor
	historyService = s.History
	configStore = s.Config
	sampleGenerator = s.Samples
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "nfcheck",
	Short: "Verify invoice PDFs against a manifest workbook",
	Long: `nfcheck locates invoice PDFs, archives renamed copies and verifies
that the invoice number, CNPJ, total amount and description from the
manifest workbook appear in each PDF's text, falling back to OCR for
scanned pages. Divergences are recorded in a timestamped log and in
the run history.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.nfcheck)")
}

// ConfigDir extracts the --config-dir value from args before the
// command tree runs, so main can build services against the right
// configuration. Falls back to the NFCHECK_CONFIG_DIR environment
// variable.
func ConfigDir(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config-dir" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config-dir="):
			return strings.TrimPrefix(arg, "--config-dir=")
		}
	}
	return os.Getenv("NFCHECK_CONFIG_DIR")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
