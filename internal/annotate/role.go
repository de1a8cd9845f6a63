package annotate

// LineRole is the structural role of a single line.
type LineRole int

const (
	RolePlain LineRole = iota
	RoleGuardStart
	RoleGuardEnd
	RoleBlank
	RoleMultilineStart
	RoleMultilineContinuation
	RoleMultilineEnd
	RoleDecorator
	RoleDeclaration
)

// String returns the string representation of the role
func (r LineRole) String() string {
	switch r {
	case RolePlain:
		return "plain"
	case RoleGuardStart:
		return "guard-start"
	case RoleGuardEnd:
		return "guard-end"
	case RoleBlank:
		return "blank"
	case RoleMultilineStart:
		return "multiline-start"
	case RoleMultilineContinuation:
		return "multiline-continuation"
	case RoleMultilineEnd:
		return "multiline-end"
	case RoleDecorator:
		return "decorator"
	case RoleDeclaration:
		return "declaration"
	default:
		return "unknown"
	}
}
