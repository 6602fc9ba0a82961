package rules

import "github.com/apexfix/apexfix-core/internal/types"

// AutoFix describes the rule-level auto-fix capability
type AutoFix int

const (
	// AutoFixNone means the rule is never auto-fixable
	AutoFixNone AutoFix = iota
	// AutoFixSafe means every instance can be fixed without semantic risk
	AutoFixSafe
	// AutoFixConditional means an instance is fixable only when its context
	// carries enough information (e.g., an inferable sObject type)
	AutoFixConditional
)

// String returns the string representation of the capability
func (a AutoFix) String() string {
	switch a {
	case AutoFixSafe:
		return "safe"
	case AutoFixConditional:
		return "conditional"
	default:
		return "none"
	}
}

// Rule defines the interface for a violation detector. Implementations must
// be pure: no I/O, no shared state, and identical findings for identical input.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "SEC001")
	ID() string

	// Name returns the human-readable name (e.g., "crud-without-access-check")
	Name() string

	// Description returns a description of what this rule detects
	Description() string

	// DefaultSeverity returns the default severity level for this rule
	DefaultSeverity() types.Severity

	// AutoFix returns the rule-level auto-fix capability
	AutoFix() AutoFix

	// Check scans the file content and returns any findings
	Check(filePath, content string) []*types.Finding
}

// RuleConfig holds configuration for a single rule
type RuleConfig struct {
	Enabled  bool
	Severity types.Severity
}

// DefaultRuleConfig returns the default configuration for a rule
func DefaultRuleConfig(r Rule) *RuleConfig {
	return &RuleConfig{
		Enabled:  true,
		Severity: r.DefaultSeverity(),
	}
}
