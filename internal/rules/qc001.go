package rules

import (
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// QC001 detects System.debug calls left in production code
type QC001 struct{}

func init() {
	Register(&QC001{})
}

var debugCallRe = regexp.MustCompile(`(?i)System\.debug\s*\(`)

func (r *QC001) ID() string {
	return "QC001"
}

func (r *QC001) Name() string {
	return "debug-statement"
}

func (r *QC001) Description() string {
	return "Avoid using System.debug statements in production code"
}

func (r *QC001) DefaultSeverity() types.Severity {
	return types.SeverityModerate
}

func (r *QC001) AutoFix() AutoFix {
	return AutoFixSafe
}

func (r *QC001) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		ExampleBad:      `System.debug('entering handler: ' + record.Id);`,
		ExampleFixed:    `// System.debug('entering handler: ' + record.Id);`,
		Remediation: `Remove or comment out System.debug statements to improve performance and
reduce log clutter.`,
	}
}

func (r *QC001) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		for _, m := range debugCallRe.FindAllStringIndex(line, -1) {
			if inComment(line, m[0]) {
				continue
			}
			findings = append(findings,
				types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, m[0]+1, r.Description()).
					WithSnippet(strings.TrimSpace(line)).
					WithFixable(true))
		}
	}

	return findings
}
