package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/rpascale86/nfcheck/internal/core/domain"
	"github.com/rpascale86/nfcheck/internal/logger"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the manifest and source folder and reprocess on change",
	Long: `Watches the manifest workbook and the source folder. When either
changes, a new processing run is started after a short quiet period.
Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "min-interval", 30*time.Second,
		"minimum time between triggered runs")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if processorService == nil {
		return errors.New("processor service not configured")
	}
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := configStore.Config()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the manifest's directory: editors replace the file on
	// save, which drops a watch on the file itself.
	watched := []string{filepath.Dir(cfg.Paths.ManifestPath), cfg.Paths.SourceDir}
	for _, dir := range watched {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		cmd.Printf("Watching %s\n", dir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(watchInterval), 1)

	// Quiet period after the last event before a run starts, so bulk
	// copies trigger one run instead of one per file.
	const settle = 2 * time.Second
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopping watch.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event, cfg.Paths.ManifestPath) {
				continue
			}
			logger.Debug("change detected: %s %s", event.Op, event.Name)
			if debounce == nil {
				debounce = time.NewTimer(settle)
				fire = debounce.C
			} else {
				debounce.Reset(settle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-fire:
			debounce = nil
			fire = nil

			if !limiter.Allow() {
				logger.Info("change ignored: last run was less than %s ago", watchInterval)
				continue
			}

			cmd.Println("Change detected, processing...")
			run, err := processorService.Process(ctx)
			switch {
			case errors.Is(err, domain.ErrRunInProgress):
				logger.Info("run already in progress, skipping")
			case err != nil:
				cmd.Printf("Processing failed: %v\n", err)
			default:
				printRunSummary(cmd, run)
			}
		}
	}
}

// relevantEvent filters watcher noise: only writes, creates, renames
// and removes matter, and within the manifest's directory only the
// manifest itself and PDFs do.
func relevantEvent(event fsnotify.Event, manifestPath string) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Remove) {
		return false
	}

	if filepath.Clean(event.Name) == filepath.Clean(manifestPath) {
		return true
	}

	return strings.EqualFold(filepath.Ext(event.Name), ".pdf")
}
