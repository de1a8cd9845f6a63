package rewrite

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchReport collects the results of a batch in input order.
type BatchReport struct {
	Results []*FileResult
}

// Annotated returns the number of files that received new comments, or
// would have in a dry run.
func (b *BatchReport) Annotated() int {
	n := 0
	for _, r := range b.Results {
		if r.Err == nil && r.Changed && !r.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of files that were declined or never started.
func (b *BatchReport) Skipped() int {
	n := 0
	for _, r := range b.Results {
		if r.Skipped {
			n++
		}
	}
	return n
}

// Unchanged returns the number of files the transform left as they were.
func (b *BatchReport) Unchanged() int {
	n := 0
	for _, r := range b.Results {
		if r.Err == nil && !r.Changed && !r.Skipped {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (b *BatchReport) Failed() []*FileResult {
	var failed []*FileResult
	for _, r := range b.Results {
		if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err returns nil when every file succeeded, otherwise an error joining
// the per-file errors.
func (b *BatchReport) Err() error {
	failed := b.Failed()
	if len(failed) == 0 {
		return nil
	}

	errs := make([]error, 0, len(failed)+1)
	errs = append(errs, fmt.Errorf("%d of %d files failed", len(failed), len(b.Results)))
	for _, r := range failed {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}

// Dir rewrites every matching file below root in place.
func (r *Rewriter) Dir(ctx context.Context, root string) (*BatchReport, error) {
	files, err := FindFiles(root, r.opts.Extensions)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Files discovered", zap.String("root", root), zap.Int("count", len(files)))

	return r.Files(ctx, files), nil
}

// Files rewrites each path in place. Files are independent, so up to
// Options.Jobs of them run at once. With StopOnError the first failure
// cancels files that have not started yet; they are reported as skipped.
func (r *Rewriter) Files(ctx context.Context, paths []string) *BatchReport {
	report := &BatchReport{Results: make([]*FileResult, len(paths))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)

	var mu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res := r.File(gctx, path, "")
			report.Results[i] = res

			if r.opts.OnResult != nil {
				mu.Lock()
				r.opts.OnResult(res)
				mu.Unlock()
			}

			if res.Err != nil && r.opts.StopOnError {
				return res.Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Warn("Batch stopped after first failure", zap.Error(err))
	}
	return report
}
