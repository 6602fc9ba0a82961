package fix

import (
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

var (
	debugCallRe       = regexp.MustCompile(`(?i)System\.debug\s*\(`)
	debugStmtRe       = regexp.MustCompile(`(?i)(\s*)(System\.debug\s*\([^;]*\)\s*;)`)
	standaloneDebugRe = regexp.MustCompile(`(?i)^\s*System\.debug\s*\(.*\)\s*;\s*$`)
)

// DebugRemovalStrategy comments out System.debug statements. Commenting
// instead of deleting keeps line numbers stable and leaves the statement
// visible for review. A debug call embedded in a larger expression is left
// for manual removal.
type DebugRemovalStrategy struct{}

func (s *DebugRemovalStrategy) RuleID() string { return "QC001" }

func (s *DebugRemovalStrategy) Apply(content string, f *types.Finding) Result {
	lines := splitLines(content)
	idx := lineAt(lines, f.Line)
	if idx < 0 {
		return failure("finding line is outside the file")
	}
	line := lines[idx]
	trimmed := strings.TrimSpace(line)

	if !debugCallRe.MatchString(line) {
		return failure("no debug statement on line")
	}
	if strings.HasPrefix(trimmed, "//") {
		return failure("debug statement already commented out")
	}

	if !strings.HasSuffix(trimmed, ";") {
		// Commenting the opening line alone would orphan the continuation.
		return failure("debug call spans multiple lines - manual fix required")
	}
	rewritten := debugStmtRe.ReplaceAllString(line, "$1// $2")
	if rewritten == line || !standaloneDebugRe.MatchString(line) {
		return failure("debug call is embedded in an expression - manual fix required")
	}

	lines[idx] = rewritten
	return success(joinLines(lines), "commented out debug statement")
}
