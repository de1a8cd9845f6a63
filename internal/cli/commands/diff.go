package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/decodoc/decodoc/internal/cli/ui"
	"github.com/decodoc/decodoc/internal/rewrite"
	"github.com/decodoc/decodoc/internal/safety"
)

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	var unified bool

	cmd := &cobra.Command{
		Use:   "diff <file|dir>",
		Short: "Preview the comments that would be added",
		Long: `Show what decodoc would change without modifying files.

Examples:
  decodoc diff src/                # Colored preview for every .ts file
  decodoc diff --unified app.ts    # Unified diff, suitable for patch`,
		Args: pathArgs(1, 1, "one file or directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, unified)
		},
	}

	cmd.Flags().BoolVarP(&unified, "unified", "u", false, "Print a plain unified diff")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string, unified bool) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	titleColor := color.New(color.FgCyan, color.Bold)

	var renderErr error
	rw := e.rewriter(rewrite.Options{
		DryRun: true,
		OnResult: func(res *rewrite.FileResult) {
			if res.Skipped {
				return
			}
			if res.Err != nil {
				fmt.Fprint(e.errOut, ui.FileError(res.Path, res.Err, e.noColor))
				return
			}
			if !res.Changed {
				return
			}

			diff := safety.Diff(res.Path, res.Original, res.Rewritten)
			if unified {
				text, err := diff.UnifiedDiff()
				if err != nil && renderErr == nil {
					renderErr = fmt.Errorf("failed to render diff for %s: %w", res.Path, err)
				}
				fmt.Fprint(e.out, text)
				return
			}

			titleColor.Fprintf(e.out, "\n=== %s ===\n", res.Path)
			fmt.Fprintln(e.out, diff.String())
			fmt.Fprintln(e.out, diff.Stats())
		},
	})

	report, err := process(cmd.Context(), rw, args)
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}

	if !unified && report.Annotated() > 0 {
		fmt.Fprintln(e.out)
		titleColor.Fprintf(e.out, "Run 'decodoc %s' to apply changes\n", args[0])
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d files had errors", len(failed))
	}
	return nil
}
