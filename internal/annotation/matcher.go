package annotation

import "github.com/apexfix/apexfix-core/internal/types"

// Apply marks findings suppressed by the given annotations. A line-scoped
// annotation suppresses matching findings on its own line and the line
// directly below it; a file-scoped annotation suppresses the whole file.
func Apply(annotations []*Annotation, findings []*types.Finding) {
	if len(annotations) == 0 {
		return
	}

	for _, f := range findings {
		for _, ann := range annotations {
			if !ann.MatchesRule(f.RuleID, f.RuleName) {
				continue
			}
			switch ann.Scope {
			case ScopeFile:
				suppress(f, ann)
			case ScopeLine:
				if f.Line == ann.Line || f.Line == ann.Line+1 {
					suppress(f, ann)
				}
			}
		}
	}
}

func suppress(f *types.Finding, ann *Annotation) {
	f.Ignored = true
	f.IgnoreReason = ann.Reason
}
