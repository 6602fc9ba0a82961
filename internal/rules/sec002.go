package rules

import (
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// SEC002 detects public or global class and interface declarations that do
// not declare a sharing model
type SEC002 struct{}

func init() {
	Register(&SEC002{})
}

var (
	typeDeclRe = regexp.MustCompile(`(?i)^\s*(public|global)\s+((?:abstract\s+|virtual\s+)?)(class|interface)\s+(\w+)`)
	sharingRe  = regexp.MustCompile(`(?i)\b(with|without|inherited)\s+sharing\b`)
)

// sharingLookback is how many lines above a declaration the sharing modifier
// may appear (split declarations)
const sharingLookback = 3

func (r *SEC002) ID() string {
	return "SEC002"
}

func (r *SEC002) Name() string {
	return "missing-sharing-declaration"
}

func (r *SEC002) Description() string {
	return "Apex classes should declare a sharing model (with sharing, without sharing, or inherited sharing)"
}

func (r *SEC002) DefaultSeverity() types.Severity {
	return types.SeverityCritical
}

func (r *SEC002) AutoFix() AutoFix {
	return AutoFixConditional
}

func (r *SEC002) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		ExampleBad:      `public class AccountService {`,
		ExampleFixed:    `public with sharing class AccountService {`,
		Remediation: `Add 'with sharing' to enforce record-level security, or make the choice
explicit with 'without sharing' or 'inherited sharing' where that is intended.`,
	}
}

func (r *SEC002) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		m := typeDeclRe.FindStringSubmatchIndex(line)
		if m == nil || isCommentLine(line) {
			continue
		}

		// The modifier may sit on the declaration line or a few lines above
		lo := i - sharingLookback
		if lo < 0 {
			lo = 0
		}
		declared := false
		for j := lo; j <= i; j++ {
			if sharingRe.MatchString(lines[j]) {
				declared = true
				break
			}
		}
		if declared {
			continue
		}

		kind := strings.ToLower(line[m[6]:m[7]])
		name := line[m[8]:m[9]]
		findings = append(findings,
			types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, m[0]+1, r.Description()).
				WithSnippet(strings.TrimSpace(line)).
				WithContext("kind", kind).
				WithContext("name", name).
				WithFixable(true))
	}

	return findings
}
