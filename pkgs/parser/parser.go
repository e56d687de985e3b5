package parser

import (
	"log/slog"
	"os"
	"strings"

	"github.com/ippcode/ippc/pkgs/ast"
	ipperr "github.com/ippcode/ippc/pkgs/errors"
	"github.com/ippcode/ippc/pkgs/lexer"
	"github.com/ippcode/ippc/pkgs/opcodes"
)

// Parse runs the whole single-pass pipeline over source text: logical
// lines, header check, then per line tokenize -> classify -> validate
// -> append. It either returns a frozen program or the first fatal
// error; nothing is retried and nothing partial survives.
func Parse(input string, table *opcodes.Table, debug bool) (*ast.Program, error) {
	logger := newLogger(debug)

	lines := lexer.Lines(input)
	program := ast.NewProgram()

	if err := validateHeader(lines, table.Header()); err != nil {
		return nil, err
	}
	program.MarkHeaderValidated()
	logger.Debug("header accepted", "marker", table.Header())

	for _, line := range lines[1:] {
		inst, err := validateLine(line, table)
		if err != nil {
			return nil, err
		}
		if err := program.Add(inst); err != nil {
			return nil, ipperr.NewInternalError("appending instruction", err).AtLine(line.Number)
		}
		logger.Debug("instruction accepted",
			"opcode", inst.Opcode,
			"args", len(inst.Args),
			"line", line.Number,
		)
	}

	program.Freeze()
	logger.Debug("program frozen", "instructions", program.Len())
	return program, nil
}

// validateHeader consumes the first logical line, which must equal the
// mandatory program marker compared case-insensitively, with no extra
// tokens. This runs exactly once, before any instruction line.
func validateHeader(lines []lexer.Line, marker string) error {
	if len(lines) == 0 {
		return ipperr.NewHeaderError("", 0)
	}
	first := lines[0]
	if !strings.EqualFold(first.Text, marker) {
		return ipperr.NewHeaderError(first.Text, first.Number)
	}
	return nil
}

// newLogger builds the pipeline debug logger. Debug output goes to
// stderr so it never contaminates the emitted document; timestamps are
// stripped for cleaner output. IPPC_DEBUG also enables it so piped
// invocations can be inspected without changing flags.
func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug || os.Getenv("IPPC_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
