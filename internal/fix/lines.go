package fix

import "strings"

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// lineAt returns the zero-based index for a one-based finding line, or -1
// when the line falls outside the content.
func lineAt(lines []string, line int) int {
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return -1
	}
	return idx
}

// indentOf returns the leading whitespace of s.
func indentOf(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
