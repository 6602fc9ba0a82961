// Package types defines the data model shared by the scanner, prioritizer,
// fixer, and verifier.
package types

// Finding represents a single detected violation at a specific file and line
type Finding struct {
	// RuleID is the unique identifier for the rule (e.g., "SEC001")
	RuleID string `json:"rule_id"`

	// RuleName is the human-readable rule name (e.g., "crud-without-access-check")
	RuleName string `json:"rule_name"`

	// Severity is the severity level declared by the rule
	Severity Severity `json:"severity"`

	// FilePath is the path of the source file the finding belongs to
	FilePath string `json:"file_path"`

	// Line is the 1-based line of the detected pattern; used as the edit anchor
	Line int `json:"line"`

	// Column is the 1-based column of the detected pattern
	Column int `json:"column"`

	// Description is a human-readable explanation, never used programmatically
	Description string `json:"description"`

	// Snippet is the trimmed source line, kept for reporting
	Snippet string `json:"snippet,omitempty"`

	// Fixable indicates whether this instance can be auto-fixed. It requires
	// both rule-level capability and sufficient instance context.
	Fixable bool `json:"fixable"`

	// IsTestCode is true if the owning file is classified as test code.
	// Test-code findings are reported but never auto-fixed.
	IsTestCode bool `json:"is_test_code"`

	// Ignored indicates if this finding was suppressed by an annotation
	Ignored bool `json:"ignored"`

	// IgnoreReason is the reason provided in the ignore annotation
	IgnoreReason string `json:"ignore_reason,omitempty"`

	// Context contains rule-specific data consumed by fix strategies
	// (e.g., the inferred sObject name or the detected operation kind)
	Context map[string]string `json:"context,omitempty"`
}

// NewFinding creates a new Finding with the given parameters
func NewFinding(ruleID, ruleName string, severity Severity, filePath string, line, column int, description string) *Finding {
	return &Finding{
		RuleID:      ruleID,
		RuleName:    ruleName,
		Severity:    severity,
		FilePath:    filePath,
		Line:        line,
		Column:      column,
		Description: description,
	}
}

// WithSnippet sets the snippet and returns the finding for chaining
func (f *Finding) WithSnippet(snippet string) *Finding {
	f.Snippet = snippet
	return f
}

// WithFixable sets the fixable flag and returns the finding for chaining
func (f *Finding) WithFixable(fixable bool) *Finding {
	f.Fixable = fixable
	return f
}

// WithContext sets a context entry and returns the finding for chaining
func (f *Finding) WithContext(key, value string) *Finding {
	if f.Context == nil {
		f.Context = make(map[string]string)
	}
	f.Context[key] = value
	return f
}

// Matches reports whether other refers to the same issue as f: same rule,
// same file, and a line within the given tolerance. Edits shift surrounding
// content, so exact line equality is too strict for cross-scan matching.
func (f *Finding) Matches(other *Finding, tolerance int) bool {
	if f.RuleID != other.RuleID || f.FilePath != other.FilePath {
		return false
	}
	delta := f.Line - other.Line
	if delta < 0 {
		delta = -delta
	}
	return delta <= tolerance
}
