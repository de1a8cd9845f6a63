package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decodoc/decodoc/internal/rewrite"
	"github.com/decodoc/decodoc/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Annotate files whenever they are saved",
		Long: `Watch a directory tree and annotate matching files as they change.

Hidden directories are ignored. Files that already carry their comments are
not rewritten, so decodoc's own writes do not trigger further work.

Examples:
  decodoc watch                    # Watch the current directory
  decodoc watch src --debounce 1s  # Wait a second after the last save`,
		Args: pathArgs(0, 1, "at most one directory"),
		RunE: runWatch,
	}

	cmd.Flags().Duration("debounce", 0, "Delay after the last change before annotating (default 200ms)")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	info, err := os.Stat(dir)
	if err != nil {
		return &rewrite.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &UnsupportedInputError{Reason: fmt.Sprintf("%s is not a directory", dir)}
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	ctx := cmd.Context()
	rw := e.rewriter(rewrite.Options{
		OnResult: func(res *rewrite.FileResult) {
			if res.Written || res.Err != nil {
				printWriteResult(e, res)
			}
		},
	})

	watcher, err := watch.NewFileWatcher(dir, e.cfg.Extensions, e.cfg.Watch.Debounce, e.logger, func(files []string) {
		report := rw.Files(ctx, files)
		e.logger.Debug("Batch finished",
			zap.Int("files", len(files)),
			zap.Int("annotated", report.Annotated()),
			zap.Int("failed", len(report.Failed())))
	})
	if err != nil {
		return err
	}

	banner := color.New(color.FgCyan, color.Bold)
	banner.Fprintf(e.out, "Watching %s for %v\n", dir, e.cfg.Extensions)
	color.New(color.FgYellow).Fprintln(e.out, "Press Ctrl+C to stop")

	if err := watcher.Run(ctx); err != nil {
		return fmt.Errorf("error stopping watcher: %w", err)
	}

	color.New(color.FgGreen).Fprintln(e.out, "Goodbye!")
	return nil
}
