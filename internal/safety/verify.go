package safety

import "fmt"

// DestructiveEditError reports an original line that a rewrite dropped.
type DestructiveEditError struct {
	Path string
	Line int
	Text string
}

// Error implements the error interface
func (e *DestructiveEditError) Error() string {
	return fmt.Sprintf("%s:%d: rewrite removes line %q", e.Path, e.Line, e.Text)
}

// Verify accepts rewritten only if every line of original survives in it,
// in order. Inserted lines are allowed. The first missing line is returned
// as a *DestructiveEditError. Lines are compared exactly, so changing
// whitespace or line endings of an original line counts as removing it.
func Verify(path, original, rewritten string) error {
	if original == rewritten {
		return nil
	}

	if removed := Diff(path, original, rewritten).Removed(); len(removed) > 0 {
		first := removed[0]
		return &DestructiveEditError{Path: path, Line: first.OldLine, Text: first.Text}
	}
	return nil
}
