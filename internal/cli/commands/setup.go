package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decodoc/decodoc/internal/annotate"
	"github.com/decodoc/decodoc/internal/cli/config"
	"github.com/decodoc/decodoc/internal/cli/ui"
	"github.com/decodoc/decodoc/internal/logging"
	"github.com/decodoc/decodoc/internal/rewrite"
)

// env is what every command needs after flags are parsed
type env struct {
	cfg       *config.Config
	logger    *zap.Logger
	annotator *annotate.Annotator
	noColor   bool
	out       io.Writer
	errOut    io.Writer
}

func setup(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd, configFile, cmd.Flags())
	if err != nil {
		noColor, _ := cmd.Flags().GetBool("no-color")
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), noColor))
		return nil, err
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	return &env{
		cfg:       cfg,
		logger:    logger,
		annotator: annotate.New(),
		noColor:   cfg.NoColor,
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
	}, nil
}

func (e *env) rewriter(opts rewrite.Options) *rewrite.Rewriter {
	opts.Extensions = e.cfg.Extensions
	if opts.Jobs == 0 {
		opts.Jobs = e.cfg.Jobs
	}
	opts.StopOnError = e.cfg.StopOnError
	return rewrite.New(e.annotator, e.logger, opts)
}

// process runs rw over the positional arguments: a single file, a
// directory, or a source and destination file.
func process(ctx context.Context, rw *rewrite.Rewriter, args []string) (*rewrite.BatchReport, error) {
	if len(args) == 2 {
		info, err := os.Stat(args[0])
		if err == nil && info.IsDir() {
			return nil, &UnsupportedInputError{Reason: fmt.Sprintf("source %s is a directory; a destination needs a single file", args[0])}
		}
		res := rw.File(ctx, args[0], args[1])
		return &rewrite.BatchReport{Results: []*rewrite.FileResult{res}}, nil
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return nil, &rewrite.IOError{Op: "stat", Path: path, Err: err}
	}

	if info.IsDir() {
		return rw.Dir(ctx, path)
	}
	return rw.Files(ctx, []string{path}), nil
}
