package rules

import (
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

// SEC001 detects DML operations and SOQL queries with no nearby CRUD/FLS
// permission check
type SEC001 struct{}

func init() {
	Register(&SEC001{})
}

var (
	dmlRe  = regexp.MustCompile(`(?i)\b(insert|update|delete|upsert|merge)\s+([A-Za-z_]\w*)\s*;`)
	soqlRe = regexp.MustCompile(`(?i)\[\s*SELECT\s+.+?\s+FROM\s+(\w+)`)

	// Anything in this set counts as a security-enforcing construct
	accessCheckRe = regexp.MustCompile(`(?i)\.is(Accessible|Createable|Updateable|Deletable)\s*\(|WITH\s+SECURITY_ENFORCED|Security\.stripInaccessible`)

	// Apex primitives and collections that can never be an sObject type
	nonObjectTypes = map[string]bool{
		"String": true, "Integer": true, "Boolean": true, "Decimal": true,
		"Double": true, "Long": true, "Date": true, "Datetime": true,
		"Id": true, "Blob": true, "Object": true,
		"List": true, "Set": true, "Map": true,
	}
)

// accessCheckWindow is the number of lines scanned on each side of an
// operation for a permission check
const accessCheckWindow = 10

func (r *SEC001) ID() string {
	return "SEC001"
}

func (r *SEC001) Name() string {
	return "crud-without-access-check"
}

func (r *SEC001) Description() string {
	return "Validate CRUD/FLS permissions before DML operations or SOQL queries"
}

func (r *SEC001) DefaultSeverity() types.Severity {
	return types.SeverityCritical
}

func (r *SEC001) AutoFix() AutoFix {
	return AutoFixConditional
}

func (r *SEC001) Documentation() *RuleDoc {
	return &RuleDoc{
		ID:              r.ID(),
		Name:            r.Name(),
		DefaultSeverity: r.DefaultSeverity(),
		Description:     r.Description(),
		ExampleBad: `List<Account> accs = new List<Account>();
insert accs;`,
		ExampleFixed: `List<Account> accs = new List<Account>();
if (!Schema.sObjectType.Account.isCreateable()) { throw new System.NoAccessException(); }
insert accs;`,
		Remediation: `Guard every DML operation with the matching Schema.sObjectType check
(isCreateable, isUpdateable, isDeletable) and every SOQL query with
isAccessible() or a WITH SECURITY_ENFORCED clause.`,
	}
}

func (r *SEC001) Check(filePath, content string) []*types.Finding {
	var findings []*types.Finding
	lines := splitLines(content)

	for i, line := range lines {
		if isCommentLine(line) {
			continue
		}

		if m := dmlRe.FindStringSubmatchIndex(line); m != nil {
			if inComment(line, m[0]) || hasNearbyAccessCheck(lines, i) {
				continue
			}
			op := strings.ToLower(line[m[2]:m[3]])
			varName := line[m[4]:m[5]]

			f := types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, m[0]+1, r.Description()).
				WithSnippet(strings.TrimSpace(line)).
				WithContext("operation", op)

			// A DML fix needs a resolvable target entity. Merge has no
			// single-permission guard, so it stays manual.
			if objType, ok := inferObjectType(lines, i, varName); ok {
				f.WithContext("object", objType)
				if op != "merge" {
					f.WithFixable(true)
				}
			}
			findings = append(findings, f)
			continue
		}

		if m := soqlRe.FindStringSubmatchIndex(line); m != nil {
			if inComment(line, m[0]) || hasNearbyAccessCheck(lines, i) {
				continue
			}
			objType := line[m[2]:m[3]]

			f := types.NewFinding(r.ID(), r.Name(), r.DefaultSeverity(), filePath, i+1, m[0]+1, r.Description()).
				WithSnippet(strings.TrimSpace(line)).
				WithContext("operation", "query").
				WithContext("object", objType)

			// A read query is fixable when the bracketed query closes on the
			// same line, so the security clause has a known insertion point
			if strings.Contains(line[m[0]:], "]") {
				f.WithFixable(true)
			}
			findings = append(findings, f)
		}
	}

	return findings
}

// hasNearbyAccessCheck reports whether any line within the check window of
// idx contains a security-enforcing construct
func hasNearbyAccessCheck(lines []string, idx int) bool {
	lo := idx - accessCheckWindow
	if lo < 0 {
		lo = 0
	}
	hi := idx + accessCheckWindow
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}
	for j := lo; j <= hi; j++ {
		if accessCheckRe.MatchString(lines[j]) {
			return true
		}
	}
	return false
}

// inferObjectType resolves the sObject type of a DML target variable by
// scanning up to 10 lines backwards for its declaration
func inferObjectType(lines []string, idx int, varName string) (string, bool) {
	listRe := regexp.MustCompile(`(?i)List<(\w+)>\s+` + regexp.QuoteMeta(varName) + `\b`)
	declRe := regexp.MustCompile(`\b(\w+)\s+` + regexp.QuoteMeta(varName) + `\s*=`)

	lo := idx - accessCheckWindow
	if lo < 0 {
		lo = 0
	}
	for j := lo; j < idx; j++ {
		if m := listRe.FindStringSubmatch(lines[j]); m != nil {
			return m[1], true
		}
		if m := declRe.FindStringSubmatch(lines[j]); m != nil {
			if looksLikeObjectType(m[1]) {
				return m[1], true
			}
		}
	}
	return "", false
}

func looksLikeObjectType(name string) bool {
	if name == "" || nonObjectTypes[name] {
		return false
	}
	first := name[0]
	return first >= 'A' && first <= 'Z'
}
