package annotate

import (
	"strings"
	"unicode"
)

// Synthesize builds the lines that replace a decorated declaration: the
// guarded comment, each decorator block verbatim, then the declaration.
// The comment takes the declaration's indentation and line ending.
func Synthesize(decorators []string, declaration string) []string {
	indent := leadingSpace(declaration)
	eol := ""
	if strings.HasSuffix(declaration, "\r") {
		eol = "\r"
	}

	lines := make([]string, 0, len(decorators)*2+8)
	lines = append(lines,
		indent+GuardStart+eol,
		indent+"/**"+eol,
		indent+" * Decorator Usage:"+eol,
		indent+" * ```"+eol,
	)
	for _, d := range decorators {
		lines = append(lines, indent+" * "+Summarize(d)+" "+eol)
	}
	lines = append(lines,
		indent+" * ```"+eol,
		indent+" */"+eol,
		indent+GuardEnd+eol,
	)

	for _, d := range decorators {
		lines = append(lines, strings.Split(d, "\n")...)
	}
	return append(lines, declaration)
}

// Summarize collapses a decorator block onto one line: every physical line
// is trimmed and the non-empty pieces are joined by a single space.
func Summarize(decorator string) string {
	parts := strings.Split(decorator, "\n")
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func leadingSpace(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if end < 0 {
		return ""
	}
	return s[:end]
}
