package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// NewRootCommand creates the root command. Run with paths, it annotates
// them in place.
func NewRootCommand() *cobra.Command {
	var interactive bool

	rootCmd := &cobra.Command{
		Use:   "decodoc <file|dir> | decodoc <src> <dst>",
		Short: "Document decorator usage in TypeScript sources",
		Long: color.CyanString(`decodoc - decorator usage comments

decodoc finds decorated classes and fields and writes a doc comment
listing their decorators above them:

  //LOCK
  /**
   * Decorator Usage:
   * ` + "```" + `
   * @Injectable()
   * ` + "```" + `
   */
  //UNLOCK
  @Injectable()
  export class UserService {

Every rewrite is diffed against the original before it is written; a
rewrite that would drop any original line is rejected and the file is
left untouched.`) + `

Examples:
  decodoc app.component.ts            # Annotate a file in place
  decodoc src/                        # Annotate every .ts file below src/
  decodoc src/app.ts out/app.ts       # Write the annotated copy elsewhere
  decodoc --interactive src/          # Confirm each file before writing`,
		Args:          pathArgs(1, 2, "a file, a directory, or a source and destination file"),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, interactive)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default ./.decodoc.yml)")
	flags.StringSlice("ext", nil, "File extensions to process in directories (default .ts)")
	flags.Int("jobs", 1, "Number of files processed in parallel")
	flags.Bool("stop-on-error", false, "Stop a directory run at the first failing file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("no-color", false, "Disable colored output")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Show each change and ask before writing")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewDiffCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewInitCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the decodoc version, Git commit, build date, and Go version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "decodoc version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command until it finishes or the process is
// interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		var unsupported *UnsupportedInputError
		if errors.As(err, &unsupported) {
			rootCmd.PrintErrln("Run 'decodoc --help' for usage.")
		}
		return err
	}
	return nil
}
