package annotate

import (
	"regexp"
	"strings"
)

// Guard markers wrap a generated comment. They are matched against the
// trimmed line and are part of the file format: any other use of these
// exact lines will be misread.
const (
	GuardStart = "//LOCK"
	GuardEnd   = "//UNLOCK"
)

const modifiers = `(?:(?:public|private|protected|readonly|static|declare|override|abstract)\s+)*`

// State is the mode carried from one line to the next while a file is
// rewritten. A State belongs to a single transform and is never shared.
type State struct {
	InsideGuard bool
	InMultiline bool

	// Documented is set by a guard end and suppresses synthesis for the
	// next flush, because the decorators that follow were already
	// described by the guarded comment.
	Documented bool

	buffer []string
}

// Classifier maps trimmed lines to roles. Its patterns are compiled once and
// are read-only, so one Classifier can serve any number of transforms.
type Classifier struct {
	multilineStart *regexp.Regexp
	decorator      *regexp.Regexp
	field          *regexp.Regexp
	class          *regexp.Regexp
}

// NewClassifier compiles the decorator and declaration patterns.
func NewClassifier() *Classifier {
	return &Classifier{
		multilineStart: regexp.MustCompile(`^@[A-Za-z_$][\w$.]*\(`),
		decorator:      regexp.MustCompile(`^@.+$`),
		field:          regexp.MustCompile(`^` + modifiers + `[A-Za-z_$][\w$]*[?!]?\s*:\s*\S.*?;?$`),
		class:          regexp.MustCompile(`^(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+[\w${}]+(?:\s*<.*>)?(?:\s+(?:extends|implements)\s+[^{]+?)?\s*(?:\{\s*\}?)?$`),
	}
}

// Classify returns the role of trimmed under state. Rules are tried in
// order and the first match wins. hasPending reports whether decorators
// are waiting for a declaration; without them a declaration is plain.
func (c *Classifier) Classify(trimmed string, state *State, hasPending bool) LineRole {
	switch {
	case trimmed == GuardStart:
		return RoleGuardStart
	case trimmed == GuardEnd:
		return RoleGuardEnd
	case state.InsideGuard:
		return RolePlain
	case trimmed == "":
		return RoleBlank
	}

	if state.InMultiline {
		// Parentheses are not balanced: a nested call closing on its own
		// line ends the decorator early.
		if strings.HasSuffix(trimmed, ")") {
			return RoleMultilineEnd
		}
		return RoleMultilineContinuation
	}

	if c.multilineStart.MatchString(trimmed) && strings.Count(trimmed, "(") > strings.Count(trimmed, ")") {
		return RoleMultilineStart
	}

	if c.decorator.MatchString(trimmed) {
		return RoleDecorator
	}

	if hasPending && c.IsDeclaration(trimmed) {
		return RoleDeclaration
	}

	return RolePlain
}

// IsDeclaration reports whether trimmed has the shape of a typed field or a
// class header, regardless of pending decorators.
func (c *Classifier) IsDeclaration(trimmed string) bool {
	return c.field.MatchString(trimmed) || c.class.MatchString(trimmed)
}
