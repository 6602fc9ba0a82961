package fix

import (
	"github.com/apexfix/apexfix-core/internal/types"
)

// Result reports the outcome of applying a single strategy to one finding.
// On success NewContent holds the full rewritten file content.
type Result struct {
	Success     bool
	NewContent  string
	Description string
	Reason      string
}

func success(content, description string) Result {
	return Result{Success: true, NewContent: content, Description: description}
}

func failure(reason string) Result {
	return Result{Success: false, Reason: reason}
}

// Strategy rewrites file content to remediate one finding produced by the
// rule it is registered for. Strategies must be line-local: a fix may only
// touch the finding's line or insert adjacent to it, so that fixes applied
// bottom-up never invalidate the line numbers of earlier findings.
type Strategy interface {
	// RuleID returns the ID of the rule this strategy remediates.
	RuleID() string

	// Apply rewrites content to fix f. It must not perform I/O.
	Apply(content string, f *types.Finding) Result
}

// DefaultStrategies returns the built-in strategy set keyed by rule ID.
func DefaultStrategies() map[string]Strategy {
	strategies := map[string]Strategy{}
	for _, s := range []Strategy{
		&DebugRemovalStrategy{},
		&SharingDeclarationStrategy{},
		&TrailingWhitespaceStrategy{},
		&CRUDCheckStrategy{},
	} {
		strategies[s.RuleID()] = s
	}
	return strategies
}
