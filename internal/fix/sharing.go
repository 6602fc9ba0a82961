package fix

import (
	"regexp"

	"github.com/apexfix/apexfix-core/internal/types"
)

var (
	sharingDeclRe    = regexp.MustCompile(`(?i)^(\s*)(public|global)(\s+)((?:abstract\s+|virtual\s+)?)(class|interface)(\s+\w+.*)$`)
	sharingPresentRe = regexp.MustCompile(`(?i)\b(with|without|inherited)\s+sharing\b`)
)

// SharingDeclarationStrategy inserts "with sharing" into a class or
// interface declaration that carries no sharing keyword. Inheriting the
// caller's context would be less surprising, but enforcing the user's
// sharing rules is the safer default for generated fixes.
type SharingDeclarationStrategy struct{}

func (s *SharingDeclarationStrategy) RuleID() string { return "SEC002" }

func (s *SharingDeclarationStrategy) Apply(content string, f *types.Finding) Result {
	lines := splitLines(content)
	idx := lineAt(lines, f.Line)
	if idx < 0 {
		return failure("finding line is outside the file")
	}
	line := lines[idx]
	if sharingPresentRe.MatchString(line) {
		return failure("sharing declaration already present")
	}
	m := sharingDeclRe.FindStringSubmatch(line)
	if m == nil {
		return failure("could not locate type declaration - manual fix required")
	}
	lines[idx] = m[1] + m[2] + m[3] + "with sharing " + m[4] + m[5] + m[6]
	return success(joinLines(lines), "added with sharing declaration")
}
