// Package rewrite applies the annotate transform to files on disk.
//
// Each file goes through read, transform, verify and commit on its own. The
// original file is only replaced after the transform has been verified, and
// only through an atomic rename.
package rewrite

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/decodoc/decodoc/internal/annotate"
)

// Transformer rewrites the text of one file. *annotate.Annotator is the
// production implementation.
type Transformer interface {
	Transform(path, original string) (*annotate.Result, error)
}

// ConfirmFunc is asked before a changed file is written. Returning false
// skips the file.
type ConfirmFunc func(res *FileResult) (bool, error)

// Options controls how files are processed.
type Options struct {
	Extensions  []string
	Jobs        int
	StopOnError bool

	// DryRun runs the full pipeline but never writes.
	DryRun bool

	Confirm ConfirmFunc

	// OnResult is called once per file, in the order files finish.
	OnResult func(res *FileResult)
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path      string
	Dest      string
	Original  string
	Rewritten string
	Blocks    int
	Changed   bool
	Written   bool
	Skipped   bool
	Err       error
}

// Rewriter runs the per-file pipeline.
type Rewriter struct {
	transformer Transformer
	logger      *zap.Logger
	opts        Options
}

// New creates a Rewriter.
func New(t Transformer, logger *zap.Logger, opts Options) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	opts.Extensions = NormalizeExtensions(opts.Extensions)

	return &Rewriter{transformer: t, logger: logger, opts: opts}
}

// File rewrites src into dst. When dst is empty or equal to src the file is
// rewritten in place, and only if the transform changed it. A separate dst
// is always written so it mirrors src.
func (r *Rewriter) File(ctx context.Context, src, dst string) *FileResult {
	if dst == "" {
		dst = src
	}
	res := &FileResult{Path: src, Dest: dst}
	logger := r.logger.With(zap.String("path", src))

	if err := ctx.Err(); err != nil {
		res.Skipped = true
		res.Err = err
		return res
	}

	info, err := os.Stat(src)
	if err != nil {
		res.Err = &IOError{Op: "stat", Path: src, Err: err}
		logger.Error("Cannot stat file", zap.Error(err))
		return res
	}

	data, err := os.ReadFile(src)
	if err != nil {
		res.Err = &IOError{Op: "read", Path: src, Err: err}
		logger.Error("Cannot read file", zap.Error(err))
		return res
	}
	res.Original = string(data)

	out, err := r.transformer.Transform(src, res.Original)
	if err != nil {
		res.Err = err
		logger.Error("Rewrite rejected", zap.Error(err))
		return res
	}
	res.Rewritten = out.Text
	res.Blocks = out.Blocks
	res.Changed = out.Changed

	inPlace := dst == src
	if r.opts.DryRun || (inPlace && !res.Changed) {
		logger.Debug("File processed", zap.Bool("changed", res.Changed), zap.Int("blocks", res.Blocks))
		return res
	}

	if r.opts.Confirm != nil && res.Changed {
		ok, err := r.opts.Confirm(res)
		if err != nil {
			res.Err = err
			return res
		}
		if !ok {
			res.Skipped = true
			logger.Info("File skipped")
			return res
		}
	}

	perm := info.Mode().Perm()
	if err := Commit(dst, res.Rewritten, perm); err != nil {
		res.Err = err
		logger.Error("Cannot commit rewrite", zap.String("dest", dst), zap.Error(err))
		return res
	}
	res.Written = true

	logger.Info("File annotated", zap.String("dest", dst), zap.Int("blocks", res.Blocks))
	return res
}
