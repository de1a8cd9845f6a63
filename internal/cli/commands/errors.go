package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UnsupportedInputError reports a malformed invocation
type UnsupportedInputError struct {
	Reason string
}

// Error implements the error interface
func (e *UnsupportedInputError) Error() string {
	return "unsupported input: " + e.Reason
}

// pathArgs accepts between min and max positional paths
func pathArgs(min, max int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return &UnsupportedInputError{
				Reason: fmt.Sprintf("expected %s, got %d arguments", usage, len(args)),
			}
		}
		for _, arg := range args {
			if arg == "" {
				return &UnsupportedInputError{Reason: "empty path"}
			}
		}
		return nil
	}
}
