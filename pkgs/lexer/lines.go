package lexer

import "strings"

// Line is one logical source line with its original 1-based number.
// The text is comment-stripped and whitespace-trimmed, never empty.
type Line struct {
	Text   string
	Number int
}

// Lines normalizes raw source text into logical lines: everything from
// the first '#' on is a comment, blank lines are dropped, and the
// original line numbering is preserved for diagnostics.
func Lines(input string) []Line {
	var lines []Line
	for i, raw := range strings.Split(input, "\n") {
		text := raw
		if cut := strings.IndexByte(text, '#'); cut >= 0 {
			text = text[:cut]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, Line{Text: text, Number: i + 1})
	}
	return lines
}
