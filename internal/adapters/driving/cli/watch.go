package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/strata-labs/strata/internal/adapters/driving/watcher"
)

var (
	watchExtensions []string
	watchDebounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest changed files",
	Long: `Monitors a directory and ingests every created or modified file
with a watched extension. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", []string{".md", ".txt"}, "file extensions to watch")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before ingesting a changed file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(ingestService,
		watcher.WithExtensions(watchExtensions),
		watcher.WithDebounce(watchDebounce),
	)

	cmd.Printf("Watching %s (ctrl-c to stop)\n", args[0])
	err := w.Watch(ctx, args[0])
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
