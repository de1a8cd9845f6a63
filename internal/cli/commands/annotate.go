package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/decodoc/decodoc/internal/cli/ui"
	"github.com/decodoc/decodoc/internal/rewrite"
	"github.com/decodoc/decodoc/internal/safety"
)

func runAnnotate(cmd *cobra.Command, args []string, interactive bool) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	opts := rewrite.Options{
		OnResult: func(res *rewrite.FileResult) { printWriteResult(e, res) },
	}
	if interactive {
		if e.cfg.Jobs > 1 {
			fmt.Fprint(e.errOut, ui.Warning("--interactive asks about one file at a time; --jobs is ignored", e.noColor))
		}
		opts.Jobs = 1
		opts.Confirm = confirmWrite(e)
	}

	report, err := process(cmd.Context(), e.rewriter(opts), args)
	if err != nil {
		return err
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}

	if len(report.Results) > 1 {
		fmt.Fprintln(e.out)
		ui.Summary(e.out, report, "annotated", e.noColor)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d files had errors", len(failed))
	}
	return nil
}

func printWriteResult(e *env, res *rewrite.FileResult) {
	successColor := color.New(color.FgGreen)
	mutedColor := color.New(color.FgWhite)

	switch {
	case res.Skipped:
		mutedColor.Fprintf(e.out, "- %s skipped\n", res.Path)
	case res.Err != nil:
		fmt.Fprint(e.errOut, ui.FileError(res.Path, res.Err, e.noColor))
	case res.Written && res.Dest != res.Path:
		successColor.Fprintf(e.out, "✓ %s → %s (%d comments)\n", res.Path, res.Dest, res.Blocks)
	case res.Written:
		successColor.Fprintf(e.out, "✓ %s annotated (%d comments)\n", res.Path, res.Blocks)
	default:
		successColor.Fprintf(e.out, "✓ %s (no changes)\n", res.Path)
	}
}

// confirmWrite shows the pending change and asks before it is written
func confirmWrite(e *env) rewrite.ConfirmFunc {
	return func(res *rewrite.FileResult) (bool, error) {
		titleColor := color.New(color.FgCyan, color.Bold)
		diff := safety.Diff(res.Path, res.Original, res.Rewritten)

		titleColor.Fprintf(e.out, "\n=== %s ===\n", res.Path)
		fmt.Fprintln(e.out, diff.String())
		fmt.Fprintln(e.out, diff.Stats())

		write := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Write %s?", res.Dest),
			Default: true,
		}
		if err := survey.AskOne(prompt, &write); err != nil {
			return false, err
		}
		return write, nil
	}
}
