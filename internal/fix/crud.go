package fix

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apexfix/apexfix-core/internal/types"
)

var (
	securityEnforcedRe = regexp.MustCompile(`(?i)WITH\s+SECURITY_ENFORCED`)

	// Guard templates keyed by DML operation. Upsert needs both create and
	// update permission.
	crudGuards = map[string]string{
		"insert": "if (!Schema.sObjectType.%s.isCreateable()) { throw new System.NoAccessException(); }",
		"update": "if (!Schema.sObjectType.%s.isUpdateable()) { throw new System.NoAccessException(); }",
		"delete": "if (!Schema.sObjectType.%s.isDeletable()) { throw new System.NoAccessException(); }",
		"upsert": "if (!Schema.sObjectType.%s.isCreateable() || !Schema.sObjectType.%s.isUpdateable()) { throw new System.NoAccessException(); }",
	}
)

// CRUDCheckStrategy remediates missing permission checks. DML operations get
// a Schema.sObjectType guard inserted on the line above; SOQL queries get a
// WITH SECURITY_ENFORCED clause appended inside the query brackets.
type CRUDCheckStrategy struct{}

func (s *CRUDCheckStrategy) RuleID() string { return "SEC001" }

func (s *CRUDCheckStrategy) Apply(content string, f *types.Finding) Result {
	lines := splitLines(content)
	idx := lineAt(lines, f.Line)
	if idx < 0 {
		return failure("finding line is outside the file")
	}

	op := f.Context["operation"]
	if op == "query" {
		return s.secureQuery(lines, idx)
	}
	return s.guardDML(lines, idx, op, f.Context["object"])
}

func (s *CRUDCheckStrategy) secureQuery(lines []string, idx int) Result {
	line := lines[idx]
	if securityEnforcedRe.MatchString(line) {
		return failure("security clause already present")
	}
	close := strings.LastIndex(line, "]")
	if close < 0 {
		return failure("query does not close on this line - manual fix required")
	}
	lines[idx] = line[:close] + " WITH SECURITY_ENFORCED" + line[close:]
	return success(joinLines(lines), "added WITH SECURITY_ENFORCED clause")
}

func (s *CRUDCheckStrategy) guardDML(lines []string, idx int, op, object string) Result {
	if object == "" {
		return failure("cannot determine target sObject type - manual fix required")
	}
	template, ok := crudGuards[op]
	if !ok {
		return failure(fmt.Sprintf("unsupported DML operation %q", op))
	}

	var guard string
	if op == "upsert" {
		guard = fmt.Sprintf(template, object, object)
	} else {
		guard = fmt.Sprintf(template, object)
	}
	guard = indentOf(lines[idx]) + guard

	lines = append(lines[:idx], append([]string{guard}, lines[idx:]...)...)
	return success(joinLines(lines), fmt.Sprintf("added CRUD permission check for %s %s", op, object))
}
