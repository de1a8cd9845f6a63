package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/decodoc/decodoc/internal/cli/ui"
	"github.com/decodoc/decodoc/internal/rewrite"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|dir>",
		Short: "Report files that are missing decorator comments",
		Long: `Run the full rewrite and safety check without writing anything.

Exits with an error if any file would change or cannot be rewritten safely.

Examples:
  decodoc check src/               # Check every .ts file below src/
  decodoc check app.component.ts   # Check a single file`,
		Args: pathArgs(1, 1, "one file or directory"),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	errorColor := color.New(color.FgRed, color.Bold)
	successColor := color.New(color.FgGreen)

	rw := e.rewriter(rewrite.Options{
		DryRun: true,
		OnResult: func(res *rewrite.FileResult) {
			switch {
			case res.Skipped:
				return
			case res.Err != nil:
				fmt.Fprint(e.errOut, ui.FileError(res.Path, res.Err, e.noColor))
			case res.Changed:
				errorColor.Fprintf(e.errOut, "✗ %s needs annotation (%d comments)\n", res.Path, res.Blocks)
			default:
				successColor.Fprintf(e.out, "✓ %s\n", res.Path)
			}
		},
	})

	report, err := process(cmd.Context(), rw, args)
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	if len(report.Results) > 1 {
		fmt.Fprintln(e.out)
		ui.Summary(e.out, report, "need annotation", e.noColor)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d files had errors", len(failed))
	}
	if n := report.Annotated(); n > 0 {
		return fmt.Errorf("%d files need annotation", n)
	}
	return nil
}
