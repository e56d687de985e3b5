package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode/ippc/pkgs/ast"
	ipperr "github.com/ippcode/ippc/pkgs/errors"
	"github.com/ippcode/ippc/pkgs/opcodes"
)

func loadTable(t *testing.T) *opcodes.Table {
	t.Helper()
	table, err := opcodes.Load()
	require.NoError(t, err)
	return table
}

func TestParseSingleInstruction(t *testing.T) {
	input := ".IPPcode24\nDEFVAR GF@counter\n"

	program, err := Parse(input, loadTable(t), false)
	require.NoError(t, err)
	require.True(t, program.Frozen())

	want := []ast.Instruction{
		{
			Opcode: "DEFVAR",
			Order:  1,
			Args: []ast.Argument{
				{Category: ast.Variable, Frame: ast.FrameGlobal, Value: "counter", Position: 1},
			},
		},
	}
	if diff := cmp.Diff(want, program.Instructions()); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOrdersAreContiguous(t *testing.T) {
	input := strings.Join([]string{
		".IPPcode24",
		"# prologue",
		"DEFVAR GF@x",
		"",
		"   # a long gap of comments",
		"",
		"PUSHS int@42",
		"POPS GF@x",
		"# epilogue",
		"BREAK",
	}, "\n")

	program, err := Parse(input, loadTable(t), false)
	require.NoError(t, err)
	require.Equal(t, 4, program.Len())

	for i, inst := range program.Instructions() {
		assert.Equal(t, i+1, inst.Order, "instruction %s", inst.Opcode)
	}
}

func TestParseOpcodeIsCaseInsensitive(t *testing.T) {
	program, err := Parse(".IPPcode24\ndefVar GF@x\nwrite GF@x\n", loadTable(t), false)
	require.NoError(t, err)
	require.Equal(t, 2, program.Len())
	assert.Equal(t, "DEFVAR", program.Instructions()[0].Opcode)
	assert.Equal(t, "WRITE", program.Instructions()[1].Opcode)
}

func TestParseHeader(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"exact header", ".IPPcode24\n", false},
		{"case-insensitive header", ".ippCODE24\n", false},
		{"header after comments and blanks", "# intro\n\n.IPPcode24\n", false},
		{"empty input", "", true},
		{"comment-only input", "# nothing\n", true},
		{"wrong language version", ".IPPcode23\n", true},
		{"extra token after marker", ".IPPcode24 extra\n", true},
		{"instruction before header", "DEFVAR GF@x\n.IPPcode24\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(tt.input, table, false)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ipperr.IsErrorType(err, ipperr.ErrHeader), "got %v", err)
				assert.Equal(t, ipperr.ExitHeader, ipperr.ExitCode(err))
				assert.Nil(t, program)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, program.Len())
		})
	}
}

func TestParseHeaderOnlyProgramIsValid(t *testing.T) {
	program, err := Parse(".IPPcode24\n# no instructions\n", loadTable(t), false)
	require.NoError(t, err)
	assert.True(t, program.HeaderValidated())
	assert.True(t, program.Frozen())
	assert.Equal(t, 0, program.Len())
}

func TestParseUnknownOpcode(t *testing.T) {
	table := loadTable(t)

	// The unknown-opcode error wins regardless of how the arguments look.
	for _, input := range []string{
		".IPPcode24\nFOO GF@x\n",
		".IPPcode24\nFOO int@abc\n",
		".IPPcode24\nFOO\n",
	} {
		_, err := Parse(input, table, false)
		require.Error(t, err)
		assert.True(t, ipperr.IsErrorType(err, ipperr.ErrUnknownOpcode), "got %v", err)
		assert.Equal(t, ipperr.ExitOpcode, ipperr.ExitCode(err))
	}
}

func TestParseUnknownOpcodeSuggestion(t *testing.T) {
	_, err := Parse(".IPPcode24\nDEFVA GF@x\n", loadTable(t), false)
	require.Error(t, err)

	pe := err.(*ipperr.ParseError)
	suggestion, ok := pe.GetContext("suggestion")
	require.True(t, ok)
	assert.Equal(t, "DEFVAR", suggestion)
	assert.Contains(t, pe.Message, "DEFVAR")
}

func TestParseArityBeforeArgumentChecks(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		name  string
		input string
	}{
		{"extra well-formed argument", ".IPPcode24\nWRITE GF@x GF@y\n"},
		{"extra malformed argument", ".IPPcode24\nWRITE int@abc int@def\n"},
		{"missing argument", ".IPPcode24\nMOVE GF@x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, table, false)
			require.Error(t, err)
			assert.True(t, ipperr.IsErrorType(err, ipperr.ErrArity), "got %v", err)
			assert.Equal(t, ipperr.ExitSyntax, ipperr.ExitCode(err))
		})
	}
}

func TestParseLexicalError(t *testing.T) {
	_, err := Parse(".IPPcode24\nPUSHS int@abc\n", loadTable(t), false)
	require.Error(t, err)
	assert.True(t, ipperr.IsErrorType(err, ipperr.ErrLexical), "got %v", err)
	assert.Equal(t, ipperr.ExitSyntax, ipperr.ExitCode(err))

	pe := err.(*ipperr.ParseError)
	assert.Equal(t, 2, pe.Line)
	token, _ := pe.GetContext("token")
	assert.Equal(t, "int@abc", token)
}

func TestParseTypeMismatch(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		name  string
		input string
	}{
		{"literal where variable required", ".IPPcode24\nDEFVAR int@5\n"},
		{"variable where type required", ".IPPcode24\nREAD GF@x GF@y\n"},
		{"label where symbol required", ".IPPcode24\nPUSHS loop\n"},
		{"variable where label required", ".IPPcode24\nCALL GF@fn\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, table, false)
			require.Error(t, err)
			assert.True(t, ipperr.IsErrorType(err, ipperr.ErrTypeMismatch), "got %v", err)
			assert.Equal(t, ipperr.ExitSyntax, ipperr.ExitCode(err))
		})
	}
}

func TestParseLabelPositions(t *testing.T) {
	program, err := Parse(".IPPcode24\nLABEL loop\nJUMP loop\nLABEL int\n", loadTable(t), false)
	require.NoError(t, err)
	require.Equal(t, 3, program.Len())

	for _, inst := range program.Instructions() {
		require.Len(t, inst.Args, 1)
		// A label position always yields a label, even when the token
		// is spelled like a type name.
		assert.Equal(t, ast.Label, inst.Args[0].Category, "instruction %d", inst.Order)
	}
	assert.Equal(t, "int", program.Instructions()[2].Args[0].Value)
}

func TestParseStringEscapeDecoding(t *testing.T) {
	program, err := Parse(".IPPcode24\nWRITE string@a\\092b\n", loadTable(t), false)
	require.NoError(t, err)
	require.Equal(t, 1, program.Len())

	arg := program.Instructions()[0].Args[0]
	assert.Equal(t, ast.StringLiteral, arg.Category)
	assert.Equal(t, `a\b`, arg.Value)
}

func TestParseTooManyTokens(t *testing.T) {
	_, err := Parse(".IPPcode24\nADD GF@a GF@b GF@c GF@d\n", loadTable(t), false)
	require.Error(t, err)
	assert.True(t, ipperr.IsErrorType(err, ipperr.ErrLexical), "got %v", err)
}

func TestParseReportsOriginalLineNumbers(t *testing.T) {
	input := ".IPPcode24\n# comment\n\nDEFVAR GF@x\nPUSHS int@bad\n"
	_, err := Parse(input, loadTable(t), false)
	require.Error(t, err)

	pe := err.(*ipperr.ParseError)
	assert.Equal(t, 5, pe.Line)
}

func TestParseFullSymbRange(t *testing.T) {
	input := strings.Join([]string{
		".IPPcode24",
		"PUSHS GF@v",
		"PUSHS int@-42",
		"PUSHS bool@true",
		"PUSHS string@",
		"PUSHS nil@nil",
	}, "\n")

	program, err := Parse(input, loadTable(t), false)
	require.NoError(t, err)
	require.Equal(t, 5, program.Len())

	wantCats := []ast.Category{
		ast.Variable, ast.IntLiteral, ast.BoolLiteral, ast.StringLiteral, ast.NilLiteral,
	}
	for i, inst := range program.Instructions() {
		assert.Equal(t, wantCats[i], inst.Args[0].Category, "instruction %d", i+1)
	}
}
