package rules

import (
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// SEC003 detects dynamic SOQL constructed through string concatenation, a
// potential injection vector. Heuristic, never auto-fixable.
type SEC003 struct{}

func init() {
	Register(&SEC003{})
}

var (
	dynamicQueryRe   = regexp.MustCompile(`(?i)Database\.query\s*\(`)
	quoteConcatRe    = regexp.MustCompile(`'\s*\+|\+\s*'`)
	bracketConcatRe  = regexp.MustCompile(`(?i)\[\s*SELECT[^\]]*\+[^\]]*FROM`)
)

func (r *SEC003) ID() string {
	return "SEC003"
}

func (r *SEC003) Name() string {
	return "soql-injection"
}

func (r *SEC003) Description() string {
	return "Potential SOQL injection vulnerability detected"
}

func (r *SEC003) DefaultSeverity() types.Severity {
	return types.SeverityCritical
}

func (r *SEC003) AutoFix() AutoFix {
	return AutoFixNone
}

func (r *SEC003) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		ExampleBad:      `List<Account> accs = Database.query('SELECT Id FROM Account WHERE Name = \'' + userInput + '\'');`,
		ExampleFixed: `List<Account> accs = Database.query('SELECT Id FROM Account WHERE Name = :safeName');`,
		Remediation: `Use bind variables or String.escapeSingleQuotes() instead of concatenating
user input into a query. This rule is never auto-fixed: rewriting a dynamic
query requires understanding where its inputs come from.`,
	}
}

func (r *SEC003) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		if isCommentLine(line) {
			continue
		}

		col := -1
		if m := dynamicQueryRe.FindStringIndex(line); m != nil && quoteConcatRe.MatchString(line) {
			col = m[0]
		} else if m := bracketConcatRe.FindStringIndex(line); m != nil {
			col = m[0]
		}
		if col < 0 || inComment(line, col) {
			continue
		}

		findings = append(findings,
			types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, col+1, r.Description()).
				WithSnippet(strings.TrimSpace(line)))
	}

	return findings
}
