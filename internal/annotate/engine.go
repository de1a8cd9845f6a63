package annotate

import "strings"

// Output is the result of one forward pass over a file.
type Output struct {
	Text string

	// Blocks is the number of comment blocks synthesized.
	Blocks int
}

// Engine drives a Classifier over the lines of a file.
type Engine struct {
	classifier *Classifier
}

// NewEngine creates an engine around c.
func NewEngine(c *Classifier) *Engine {
	return &Engine{classifier: c}
}

// Rewrite makes a single forward pass over text and returns the annotated
// text. It never fails: lines it cannot place are passed through.
func (e *Engine) Rewrite(text string) Output {
	lines, trailingNewline := splitLines(text)

	r := &pass{classifier: e.classifier, out: make([]string, 0, len(lines))}
	for _, line := range lines {
		r.step(line)
	}
	r.release()

	out := strings.Join(r.out, "\n")
	if trailingNewline {
		out += "\n"
	}
	return Output{Text: out, Blocks: r.blocks}
}

// pass is the mutable state of one Rewrite call.
type pass struct {
	classifier *Classifier
	state      State
	pending    Pending
	out        []string
	blocks     int
}

func (r *pass) step(raw string) {
	trimmed := strings.TrimSpace(raw)

	switch r.classifier.Classify(trimmed, &r.state, !r.pending.IsEmpty()) {
	case RoleGuardStart:
		r.release()
		r.state.InsideGuard = true
		r.emit(raw)

	case RoleGuardEnd:
		r.release()
		r.state.InsideGuard = false
		r.state.Documented = true
		r.emit(raw)

	case RoleBlank:
		if r.state.InMultiline {
			r.state.buffer = append(r.state.buffer, raw)
			return
		}
		r.release()
		r.emit(raw)

	case RoleMultilineStart:
		r.state.InMultiline = true
		r.state.buffer = append(r.state.buffer[:0], raw)

	case RoleMultilineContinuation:
		r.state.buffer = append(r.state.buffer, raw)

	case RoleMultilineEnd:
		r.state.buffer = append(r.state.buffer, raw)
		r.pending.Push(strings.Join(r.state.buffer, "\n"))
		r.state.buffer = r.state.buffer[:0]
		r.state.InMultiline = false

	case RoleDecorator:
		r.pending.Push(raw)

	case RoleDeclaration:
		r.flush(raw)

	default:
		if !r.state.InsideGuard {
			r.release()
		}
		r.emit(raw)
	}
}

// flush attaches every pending decorator to the declaration line. Pending
// is empty afterwards.
func (r *pass) flush(declaration string) {
	decorators := r.pending.Flush()
	if r.state.Documented {
		r.emitBlocks(decorators)
		r.emit(declaration)
		r.state.Documented = false
		return
	}

	r.out = append(r.out, Synthesize(decorators, declaration)...)
	r.blocks++
}

// release emits pending decorators and any open multi-line decorator
// verbatim, without a comment. It is used when decorators are not followed
// by a declaration.
func (r *pass) release() {
	r.emitBlocks(r.pending.Flush())
	if len(r.state.buffer) > 0 {
		r.out = append(r.out, r.state.buffer...)
		r.state.buffer = r.state.buffer[:0]
	}
	r.state.InMultiline = false
	r.state.Documented = false
}

func (r *pass) emitBlocks(blocks []string) {
	for _, b := range blocks {
		r.out = append(r.out, strings.Split(b, "\n")...)
	}
}

func (r *pass) emit(line string) {
	r.out = append(r.out, line)
}

// splitLines splits text on newlines. A final newline terminates the last
// line and does not start a new one.
func splitLines(text string) ([]string, bool) {
	if text == "" {
		return nil, false
	}
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	return strings.Split(text, "\n"), trailing
}
