package parser

import (
	"strings"

	"github.com/ippcode/ippc/pkgs/ast"
	ipperr "github.com/ippcode/ippc/pkgs/errors"
	"github.com/ippcode/ippc/pkgs/lexer"
	"github.com/ippcode/ippc/pkgs/opcodes"
)

// validateLine turns one logical line into a validated instruction.
// Check order is fixed: opcode existence, then arity, then each
// position's category in argument order. Arity is decided before any
// per-argument failure is surfaced, so a wrong argument count wins
// even when an individual token is also malformed.
func validateLine(line lexer.Line, table *opcodes.Table) (ast.Instruction, error) {
	opcode, raws, err := lexer.SplitLine(line)
	if err != nil {
		return ast.Instruction{}, err
	}

	sig, ok := table.Lookup(opcode)
	if !ok {
		return ast.Instruction{}, ipperr.NewUnknownOpcodeError(
			strings.ToUpper(opcode), line.Number, table.Suggest(opcode))
	}

	if len(raws) != sig.Arity() {
		return ast.Instruction{}, ipperr.NewArityError(sig.Name, sig.Arity(), len(raws), line.Number)
	}

	args := make([]ast.Argument, 0, len(raws))
	for i, raw := range raws {
		position := i + 1
		cls, ok := lexer.Classify(raw)
		if !ok {
			return ast.Instruction{}, ipperr.NewLexicalError(raw, position, line.Number)
		}
		role := sig.Params[i]
		if !role.Allows(cls.Category) {
			return ast.Instruction{}, ipperr.NewTypeMismatchError(
				sig.Name, position, role.Expected(), cls.Category.String(), line.Number)
		}
		args = append(args, ast.Argument{
			Category: role.Normalize(cls.Category),
			Frame:    cls.Frame,
			Value:    cls.Value,
			Position: position,
		})
	}

	return ast.Instruction{Opcode: sig.Name, Args: args}, nil
}
