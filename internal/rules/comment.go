package rules

import "strings"

// inComment reports whether the 0-based position on a line falls inside a
// comment. Line-local heuristic: a `/*` that opens and closes on an earlier
// line is not tracked.
func inComment(line string, pos int) bool {
	if commentPos := strings.Index(line, "//"); commentPos != -1 && commentPos < pos {
		return true
	}

	prefix := line
	if pos < len(line) {
		prefix = line[:pos]
	}
	if strings.Contains(prefix, "/*") && !strings.Contains(prefix, "*/") {
		return true
	}

	return false
}

// isCommentLine reports whether the line is entirely a comment
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// splitLines splits file content into lines without altering line terminators
// beyond the split itself. Findings index into this slice with Line-1.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
