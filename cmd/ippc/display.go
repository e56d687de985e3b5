package main

import (
	"fmt"
	"io"
	"os"

	ipperr "github.com/ippcode/ippc/pkgs/errors"
)

// ANSI color codes for diagnostics
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
)

// formatError writes one diagnostic line to the error channel: the
// error type as a colored tag, the message with its source line, and
// the category's exit code.
func formatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	pe, ok := err.(*ipperr.ParseError)
	if !ok {
		_, _ = fmt.Fprintf(w, "%s %v\n", colorize("Error:", colorRed, useColor), err)
		return
	}

	msg := pe.Message
	if pe.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, pe.Line)
	}
	tag := colorize("["+pe.Type+"]", colorRed, useColor)
	_, _ = fmt.Fprintf(w, "%s %s (%d)\n", tag, msg, ipperr.ExitCode(pe))
}

// colorize wraps text in ANSI color codes if color is enabled
func colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + colorReset
}

// shouldUseColor determines if diagnostics should be colored.
// Respects --no-color, the NO_COLOR environment variable, and whether
// stderr is a terminal.
func shouldUseColor(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
