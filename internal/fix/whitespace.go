package fix

import (
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// TrailingWhitespaceStrategy strips trailing spaces and tabs from the
// finding's line. Only the reported line is touched so that line numbers
// of other findings stay valid.
type TrailingWhitespaceStrategy struct{}

func (s *TrailingWhitespaceStrategy) RuleID() string { return "QC003" }

func (s *TrailingWhitespaceStrategy) Apply(content string, f *types.Finding) Result {
	lines := splitLines(content)
	idx := lineAt(lines, f.Line)
	if idx < 0 {
		return failure("finding line is outside the file")
	}
	trimmed := strings.TrimRight(lines[idx], " \t")
	if trimmed == lines[idx] {
		return failure("no trailing whitespace on line")
	}
	lines[idx] = trimmed
	return success(joinLines(lines), "removed trailing whitespace")
}
