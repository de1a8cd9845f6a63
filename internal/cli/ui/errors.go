package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/decodoc/decodoc/internal/rewrite"
	"github.com/decodoc/decodoc/internal/safety"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with help commands
//
// Example output:
//
//	✗ UNSAFE REWRITE: src/app.ts:12: rewrite removes line "@Input()"
//
//	   The file was left untouched.
//
//	   → Preview the rewrite: decodoc diff src/app.ts
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "!"
	default:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "✗"
	}

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// FileError renders the error of a single file, picking the wording from
// the error kind.
func FileError(path string, err error, noColor bool) string {
	var destructive *safety.DestructiveEditError
	var ioErr *rewrite.IOError

	switch {
	case errors.As(err, &destructive):
		return FormatError(ErrorOptions{
			Level:       ErrorLevelError,
			Context:     "unsafe rewrite",
			Problem:     destructive.Error(),
			Consequence: "The rewrite would drop an original line. The file was left untouched.",
			HelpCommands: []string{
				"Preview the rewrite: decodoc diff " + path,
			},
			NoColor: noColor,
		})
	case errors.As(err, &ioErr):
		return FormatError(ErrorOptions{
			Level:       ErrorLevelError,
			Context:     "file error",
			Problem:     ioErr.Error(),
			Consequence: "The file was left untouched.",
			NoColor:     noColor,
		})
	default:
		return FormatError(ErrorOptions{
			Level:   ErrorLevelError,
			Problem: fmt.Sprintf("%s: %v", path, err),
			NoColor: noColor,
		})
	}
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "configuration error",
		Problem: message,
		HelpCommands: []string{
			"Write a default config: decodoc init",
			"Get help: decodoc --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
