package types

import "testing"

func TestNewFinding_Chaining(t *testing.T) {
	f := NewFinding("SEC001", "crud-without-access-check", SeverityCritical, "src/Foo.cls", 12, 5, "missing access check").
		WithSnippet("insert acc;").
		WithFixable(true).
		WithContext("operation", "insert").
		WithContext("object", "Account")

	if f.RuleID != "SEC001" {
		t.Errorf("RuleID = %q, want %q", f.RuleID, "SEC001")
	}
	if f.Line != 12 || f.Column != 5 {
		t.Errorf("position = %d:%d, want 12:5", f.Line, f.Column)
	}
	if !f.Fixable {
		t.Error("Fixable = false, want true")
	}
	if f.Context["object"] != "Account" {
		t.Errorf("Context[object] = %q, want %q", f.Context["object"], "Account")
	}
	if f.Snippet != "insert acc;" {
		t.Errorf("Snippet = %q, want %q", f.Snippet, "insert acc;")
	}
}

func TestFinding_Matches(t *testing.T) {
	base := NewFinding("QC001", "debug-statement", SeverityModerate, "src/Foo.cls", 10, 1, "")

	tests := []struct {
		name      string
		other     *Finding
		tolerance int
		want      bool
	}{
		{"exact", NewFinding("QC001", "debug-statement", SeverityModerate, "src/Foo.cls", 10, 1, ""), 0, true},
		{"within tolerance below", NewFinding("QC001", "debug-statement", SeverityModerate, "src/Foo.cls", 7, 1, ""), 5, true},
		{"within tolerance above", NewFinding("QC001", "debug-statement", SeverityModerate, "src/Foo.cls", 15, 1, ""), 5, true},
		{"outside tolerance", NewFinding("QC001", "debug-statement", SeverityModerate, "src/Foo.cls", 16, 1, ""), 5, false},
		{"different rule", NewFinding("QC003", "trailing-whitespace", SeverityLow, "src/Foo.cls", 10, 1, ""), 5, false},
		{"different file", NewFinding("QC001", "debug-statement", SeverityModerate, "src/Bar.cls", 10, 1, ""), 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Matches(tt.other, tt.tolerance); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
