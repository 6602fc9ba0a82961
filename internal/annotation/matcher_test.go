package annotation

import (
	"testing"

	"github.com/apexfix/apexfix-core/internal/types"
)

func finding(rule, name string, line int) *types.Finding {
	return types.NewFinding(rule, name, types.SeverityModerate, "A.cls", line, 1, "")
}

func TestApply_LineScope(t *testing.T) {
	anns := []*Annotation{{Scope: ScopeLine, Rules: []string{"QC001"}, Reason: "intentional", Line: 4}}
	findings := []*types.Finding{
		finding("QC001", "debug-statement", 5),  // next line: suppressed
		finding("QC001", "debug-statement", 4),  // same line: suppressed
		finding("QC001", "debug-statement", 6),  // too far
		finding("QC003", "trailing-whitespace", 5), // different rule
	}

	Apply(anns, findings)

	if !findings[0].Ignored || !findings[1].Ignored {
		t.Error("findings on and below the annotation line should be suppressed")
	}
	if findings[0].IgnoreReason != "intentional" {
		t.Errorf("IgnoreReason = %q, want %q", findings[0].IgnoreReason, "intentional")
	}
	if findings[2].Ignored {
		t.Error("finding two lines below should not be suppressed")
	}
	if findings[3].Ignored {
		t.Error("finding for a different rule should not be suppressed")
	}
}

func TestApply_FileScope(t *testing.T) {
	anns := []*Annotation{{Scope: ScopeFile, Line: 1}}
	findings := []*types.Finding{
		finding("QC001", "debug-statement", 10),
		finding("SEC001", "crud-without-access-check", 50),
	}

	Apply(anns, findings)

	for i, f := range findings {
		if !f.Ignored {
			t.Errorf("finding %d not suppressed by file-scope annotation", i)
		}
	}
}

func TestApply_NoAnnotations(t *testing.T) {
	f := finding("QC001", "debug-statement", 3)
	Apply(nil, []*types.Finding{f})
	if f.Ignored {
		t.Error("finding suppressed without any annotation")
	}
}
