// Package annotation handles parsing and matching of apexfix ignore annotations.
package annotation

import "slices"

// Scope defines where an annotation applies
type Scope int

const (
	// ScopeLine applies to the annotated line and the line below it
	ScopeLine Scope = iota
	// ScopeFile applies to the entire file
	ScopeFile
)

// Annotation represents a parsed apexfix ignore annotation
type Annotation struct {
	// Scope determines whether this applies to a line or the entire file
	Scope Scope

	// Rules is the list of rule IDs or names to ignore (empty = all rules)
	Rules []string

	// Reason is the documented reason for ignoring
	Reason string

	// Location is where the annotation was found
	Filename string
	Line     int
}

// MatchesRule returns true if this annotation applies to the given rule,
// identified by either its ID or its name
func (a *Annotation) MatchesRule(id, name string) bool {
	if len(a.Rules) == 0 {
		return true
	}
	return slices.Contains(a.Rules, id) || slices.Contains(a.Rules, name)
}
