package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// QC002 flags methods whose cognitive complexity exceeds a fixed threshold.
// Complexity is a flat count of branching constructs inside the brace-delimited
// method body; never auto-fixable.
type QC002 struct{}

func init() {
	Register(&QC002{})
}

// ComplexityThreshold is the score above which a method is flagged
const ComplexityThreshold = 15

var methodSigRe = regexp.MustCompile(`(?i)\b(public|private|protected|global)\s+(?:static\s+)?[\w<>,.]+\s+(\w+)\s*\([^)]*\)\s*\{`)

var branchingRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bif\s*\(`),
	regexp.MustCompile(`(?i)\belse\b`),
	regexp.MustCompile(`(?i)\bfor\s*\(`),
	regexp.MustCompile(`(?i)\bwhile\s*\(`),
	regexp.MustCompile(`(?i)\bdo\s*\{`),
	regexp.MustCompile(`(?i)\bcatch\s*\(`),
	regexp.MustCompile(`(?i)\bwhen\s`),
	regexp.MustCompile(`&&`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`\?[^.:]+:`), // ternary, not the safe-navigation operator
}

func (r *QC002) ID() string {
	return "QC002"
}

func (r *QC002) Name() string {
	return "cognitive-complexity"
}

func (r *QC002) Description() string {
	return "Method has high cognitive complexity"
}

func (r *QC002) DefaultSeverity() types.Severity {
	return types.SeverityModerate
}

func (r *QC002) AutoFix() AutoFix {
	return AutoFixNone
}

func (r *QC002) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		Remediation: `Refactor complex methods by extracting logic into smaller, focused methods.
Reduce nesting levels and simplify conditional logic. Not auto-fixed:
restructuring a method is a business-logic judgment.`,
	}
}

func (r *QC002) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		m := methodSigRe.FindStringSubmatchIndex(line)
		if m == nil || isCommentLine(line) || inComment(line, m[0]) {
			continue
		}
		name := line[m[4]:m[5]]

		body := extractBody(lines, i)
		score := complexityOf(body)
		if score <= ComplexityThreshold {
			continue
		}

		findings = append(findings,
			types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, m[0]+1,
				fmt.Sprintf("%s (complexity: %d)", r.Description(), score)).
				WithSnippet(strings.TrimSpace(line)).
				WithContext("method", name).
				WithContext("complexity", strconv.Itoa(score)))
	}

	return findings
}

// extractBody returns the brace-delimited body of the method whose signature
// opens on lines[start], found by counting braces until the depth returns to
// zero. Unbalanced input yields the rest of the file, which only inflates the
// score, never hides a method.
func extractBody(lines []string, start int) string {
	depth := 0
	opened := false
	var body []string

	for i := start; i < len(lines); i++ {
		line := lines[i]
		depth += strings.Count(line, "{")
		if depth > 0 {
			opened = true
		}
		depth -= strings.Count(line, "}")
		if i > start {
			body = append(body, line)
		}
		if opened && depth <= 0 {
			break
		}
	}
	return strings.Join(body, "\n")
}

// complexityOf counts branching constructs in the body
func complexityOf(body string) int {
	score := 0
	for _, line := range strings.Split(body, "\n") {
		if isCommentLine(line) {
			continue
		}
		for _, re := range branchingRes {
			score += len(re.FindAllStringIndex(line, -1))
		}
	}
	return score
}
