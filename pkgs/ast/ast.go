package ast

import "fmt"

// Category classifies a single instruction argument.
type Category int

const (
	Variable Category = iota
	IntLiteral
	BoolLiteral
	StringLiteral
	NilLiteral
	TypeName
	Label
)

// Pre-computed category name lookup for fast debugging
var categoryNames = [...]string{
	Variable:      "VARIABLE",
	IntLiteral:    "INT_LITERAL",
	BoolLiteral:   "BOOL_LITERAL",
	StringLiteral: "STRING_LITERAL",
	NilLiteral:    "NIL_LITERAL",
	TypeName:      "TYPE_NAME",
	Label:         "LABEL",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) && int(c) >= 0 {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// XMLType returns the lowercase type attribute used in the emitted document.
func (c Category) XMLType() string {
	switch c {
	case Variable:
		return "var"
	case IntLiteral:
		return "int"
	case BoolLiteral:
		return "bool"
	case StringLiteral:
		return "string"
	case NilLiteral:
		return "nil"
	case TypeName:
		return "type"
	case Label:
		return "label"
	default:
		return "unknown"
	}
}

// Frame is a variable storage scope prefix.
type Frame string

const (
	FrameGlobal    Frame = "GF"
	FrameLocal     Frame = "LF"
	FrameTemporary Frame = "TF"
)

// Argument is one classified instruction operand. Frame is set iff
// Category is Variable. Value holds the decoded literal text, the
// variable name, or the bare type/label identifier.
type Argument struct {
	Category Category
	Frame    Frame
	Value    string
	Position int // 1-based
}

// Text reconstructs the argument's textual form for document emission.
func (a Argument) Text() string {
	if a.Category == Variable {
		return string(a.Frame) + "@" + a.Value
	}
	return a.Value
}

// Instruction is a single validated instruction with its canonical
// uppercase opcode and 0-3 arguments in position order.
type Instruction struct {
	Opcode string
	Order  int
	Args   []Argument
}
