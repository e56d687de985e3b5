package opcodes

import (
	"fmt"

	"github.com/ippcode/ippc/pkgs/ast"
)

// Role names the kind of operand a signature position expects. Each
// role expands to a fixed set of allowed argument categories.
type Role int

const (
	RoleVar Role = iota
	RoleSymb
	RoleLabel
	RoleType
)

var roleNames = [...]string{
	RoleVar:   "var",
	RoleSymb:  "symb",
	RoleLabel: "label",
	RoleType:  "type",
}

func (r Role) String() string {
	if int(r) < len(roleNames) && int(r) >= 0 {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// roleFromString maps the table's JSON role names onto Role values.
// The table schema guarantees only known names reach this point.
func roleFromString(s string) (Role, error) {
	switch s {
	case "var":
		return RoleVar, nil
	case "symb":
		return RoleSymb, nil
	case "label":
		return RoleLabel, nil
	case "type":
		return RoleType, nil
	default:
		return 0, fmt.Errorf("unknown operand role %q", s)
	}
}

// Allows reports whether an argument category is a member of the
// role's allowed set. A symb position takes a variable or any literal;
// a label position also takes a bare type name, since a label may
// share its spelling with a type.
func (r Role) Allows(c ast.Category) bool {
	switch r {
	case RoleVar:
		return c == ast.Variable
	case RoleSymb:
		switch c {
		case ast.Variable, ast.IntLiteral, ast.BoolLiteral, ast.StringLiteral, ast.NilLiteral:
			return true
		}
		return false
	case RoleLabel:
		return c == ast.Label || c == ast.TypeName
	case RoleType:
		return c == ast.TypeName
	default:
		return false
	}
}

// Normalize re-tags a category for its position: a bare type name
// standing in a label position is a label.
func (r Role) Normalize(c ast.Category) ast.Category {
	if r == RoleLabel {
		return ast.Label
	}
	return c
}

// Expected describes the role's allowed set for diagnostics.
func (r Role) Expected() string {
	switch r {
	case RoleVar:
		return "a variable"
	case RoleSymb:
		return "a variable or literal"
	case RoleLabel:
		return "a label"
	case RoleType:
		return "a type name"
	default:
		return "an operand"
	}
}
