package lexer

import (
	"strconv"
	"strings"

	"github.com/ippcode/ippc/pkgs/ast"
)

// ASCII character lookup tables for fast classification
var (
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isDecDigit   [128]bool
	isHexDigit   [128]bool
	isOctDigit   [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		special := ch == '_' || ch == '-' || ch == '$' || ch == '&' ||
			ch == '%' || ch == '*' || ch == '!' || ch == '?'
		isDecDigit[i] = '0' <= ch && ch <= '9'
		isHexDigit[i] = isDecDigit[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
		isOctDigit[i] = '0' <= ch && ch <= '7'
		isIdentStart[i] = letter || special
		isIdentPart[i] = isIdentStart[i] || isDecDigit[i]
	}
}

// Classified is the result of recognizing one raw argument token.
// Frame is set iff Category is Variable; Value holds the variable
// name, the decoded literal text, or the bare type/label identifier.
type Classified struct {
	Category ast.Category
	Frame    ast.Frame
	Value    string
}

// Classify applies the fixed-priority argument patterns to a raw
// token: variable, typed literal, bare type name, then label
// identifier. The first match wins; no match reports ok=false.
// Classification is pure and all-or-nothing.
func Classify(raw string) (Classified, bool) {
	if head, rest, found := strings.Cut(raw, "@"); found {
		switch head {
		case "GF", "LF", "TF":
			if !isIdentifier(rest) {
				return Classified{}, false
			}
			return Classified{Category: ast.Variable, Frame: ast.Frame(head), Value: rest}, true
		case "int":
			if !isIntLiteral(rest) {
				return Classified{}, false
			}
			return Classified{Category: ast.IntLiteral, Value: rest}, true
		case "bool":
			if rest != "true" && rest != "false" {
				return Classified{}, false
			}
			return Classified{Category: ast.BoolLiteral, Value: rest}, true
		case "string":
			decoded, ok := decodeString(rest)
			if !ok {
				return Classified{}, false
			}
			return Classified{Category: ast.StringLiteral, Value: decoded}, true
		case "nil":
			if rest != "nil" {
				return Classified{}, false
			}
			return Classified{Category: ast.NilLiteral, Value: rest}, true
		default:
			return Classified{}, false
		}
	}

	switch raw {
	case "int", "bool", "string", "nil":
		return Classified{Category: ast.TypeName, Value: raw}, true
	}

	if isIdentifier(raw) {
		return Classified{Category: ast.Label, Value: raw}, true
	}

	return Classified{}, false
}

// isIdentifier checks the variable/label name grammar: a letter or one
// of _-$&%*!? followed by any mix of those and digits. ASCII only.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 128 {
			return false
		}
		if i == 0 {
			if !isIdentStart[ch] {
				return false
			}
			continue
		}
		if !isIdentPart[ch] {
			return false
		}
	}
	return true
}

// isIntLiteral checks the integer literal grammar: optional sign, then
// decimal digits, 0x/0X hex or 0o/0O octal, with underscores permitted
// between digits.
func isIntLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return digitRun(s[2:], &isHexDigit)
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'o' || s[1] == 'O') {
		return digitRun(s[2:], &isOctDigit)
	}
	return digitRun(s, &isDecDigit)
}

// digitRun checks a run of digits where single underscores may appear
// between digits but never lead, trail or repeat.
func digitRun(s string, digits *[128]bool) bool {
	if s == "" || s[0] == '_' || s[len(s)-1] == '_' {
		return false
	}
	prevUnderscore := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '_' {
			if prevUnderscore {
				return false
			}
			prevUnderscore = true
			continue
		}
		if ch >= 128 || !digits[ch] {
			return false
		}
		prevUnderscore = false
	}
	return true
}

// decodeString decodes the IPPcode string escape form: a backslash
// must be followed by exactly three decimal digits naming a character
// code. Any other backslash use rejects the whole token.
func decodeString(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+3 >= len(s) {
			return "", false
		}
		digits := s[i+1 : i+4]
		for j := 0; j < 3; j++ {
			if digits[j] < '0' || digits[j] > '9' {
				return "", false
			}
		}
		code, err := strconv.Atoi(digits)
		if err != nil {
			return "", false
		}
		b.WriteRune(rune(code))
		i += 4
	}
	return b.String(), true
}
