package annotate

import "github.com/decodoc/decodoc/internal/safety"

// Result is a verified rewrite of one file.
type Result struct {
	Text    string
	Blocks  int
	Changed bool
}

// Annotator combines the rewrite engine with the safety verifier.
type Annotator struct {
	rewrite func(string) Output
}

// New returns an Annotator with the standard classifier.
func New() *Annotator {
	return NewWithEngine(NewEngine(NewClassifier()))
}

// NewWithEngine returns an Annotator that rewrites with e.
func NewWithEngine(e *Engine) *Annotator {
	return &Annotator{rewrite: e.Rewrite}
}

// Transform rewrites original and proves that no original line was lost.
// path is only used to label a *safety.DestructiveEditError; on error the
// rewritten text must be discarded.
func (a *Annotator) Transform(path, original string) (*Result, error) {
	out := a.rewrite(original)

	if err := safety.Verify(path, original, out.Text); err != nil {
		return nil, err
	}

	return &Result{
		Text:    out.Text,
		Blocks:  out.Blocks,
		Changed: out.Text != original,
	}, nil
}
