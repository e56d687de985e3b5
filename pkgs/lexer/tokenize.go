package lexer

import (
	"strings"

	ipperr "github.com/ippcode/ippc/pkgs/errors"
)

// MaxTokens is the longest permitted instruction line: an opcode plus
// up to three arguments.
const MaxTokens = 4

// SplitLine splits one logical line into an opcode token and its raw
// argument tokens. Lines longer than MaxTokens tokens are rejected.
func SplitLine(line Line) (opcode string, args []string, err error) {
	tokens := strings.Fields(line.Text)
	if len(tokens) == 0 {
		// Lines never yields empty text; reaching here is a driver bug.
		return "", nil, ipperr.NewInternalError("empty logical line", nil).AtLine(line.Number)
	}
	if len(tokens) > MaxTokens {
		return "", nil, ipperr.NewTooManyTokensError(len(tokens), line.Number)
	}
	return tokens[0], tokens[1:], nil
}
