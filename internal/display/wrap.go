package display

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Hanging wraps text to DefaultWidth and indents every line after the first
// by n spaces.
func Hanging(text string, n uint) []string {
	lines := strings.Split(wordwrap.String(text, DefaultWidth-int(n)), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent.String(lines[i], n)
	}
	return lines
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
