package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// QC003 detects trailing whitespace, including lines that contain
// nothing but whitespace
type QC003 struct{}

func init() {
	Register(&QC003{})
}

var trailingWSRe = regexp.MustCompile(`[ \t]+$`)

func (r *QC003) ID() string {
	return "QC003"
}

func (r *QC003) Name() string {
	return "trailing-whitespace"
}

func (r *QC003) Description() string {
	return "Lines should not have trailing whitespace"
}

func (r *QC003) DefaultSeverity() types.Severity {
	return types.SeverityLow
}

func (r *QC003) AutoFix() AutoFix {
	return AutoFixSafe
}

func (r *QC003) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		ExampleBad:      `Integer count = 0;   `,
		ExampleFixed:    `Integer count = 0;`,
		Remediation:     `Remove trailing whitespace from lines to maintain clean code.`,
	}
}

func (r *QC003) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		loc := trailingWSRe.FindStringIndex(line)
		if loc == nil {
			continue
		}
		findings = append(findings,
			types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, loc[0]+1, r.Description()).
				WithSnippet(strings.TrimRight(line, " \t")).
				WithContext("column", strconv.Itoa(loc[0]+1)).
				WithContext("count", strconv.Itoa(loc[1]-loc[0])).
				WithFixable(true))
	}

	return findings
}
