package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apexfix/apexfix-core/internal/rules"
	"github.com/apexfix/apexfix-core/internal/types"
)

const dirtyClass = `public class AccountService {
    public void save() {
        System.debug('saving');
        List<Account> accs = new List<Account>();
        insert accs;
    }
}
`

const cleanClass = `public with sharing class CleanService {
    public void run() {
        Integer x = 1;
    }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScan_FindsViolations(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountService.cls": dirtyClass,
		"CleanService.cls":   cleanClass,
	})

	result, err := New(rules.DefaultRegistry).Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.FilesScanned != 2 {
		t.Errorf("FilesScanned = %d, want 2", result.FilesScanned)
	}
	if len(result.ByRule["SEC002"]) != 1 {
		t.Errorf("SEC002 findings = %d, want 1 (missing sharing on AccountService)", len(result.ByRule["SEC002"]))
	}
	if len(result.ByRule["QC001"]) != 1 {
		t.Errorf("QC001 findings = %d, want 1", len(result.ByRule["QC001"]))
	}
	if len(result.ByRule["SEC001"]) != 1 {
		t.Errorf("SEC001 findings = %d, want 1", len(result.ByRule["SEC001"]))
	}
	if result.TotalViolations != len(result.Findings) {
		t.Errorf("TotalViolations = %d, want %d", result.TotalViolations, len(result.Findings))
	}
}

func TestScan_TestCodeSkippedByDefault(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountServiceTest.cls": dirtyClass,
	})

	result, err := New(rules.DefaultRegistry).Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.FilesScanned != 0 {
		t.Errorf("FilesScanned = %d, want 0 (test file skipped)", result.FilesScanned)
	}
	if len(result.Findings) != 0 {
		t.Errorf("findings = %d, want 0", len(result.Findings))
	}
}

func TestScan_IncludeTestCode(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountServiceTest.cls": dirtyClass,
	})

	result, err := New(rules.DefaultRegistry, WithIncludeTestCode(true)).Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Findings) == 0 {
		t.Fatal("expected findings from test file when included")
	}
	for _, f := range result.Findings {
		if !f.IsTestCode {
			t.Errorf("finding %s at line %d not flagged as test code", f.RuleID, f.Line)
		}
	}
}

func TestScan_IsTestMarker(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"Annotated.cls": "@IsTest\nprivate class Annotated {\n    System.debug('x');\n}\n",
	})

	result, err := New(rules.DefaultRegistry, WithIncludeTestCode(true)).Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for _, f := range result.Findings {
		if !f.IsTestCode {
			t.Error("findings in @IsTest file should be flagged as test code")
		}
	}
}

func TestScan_AnnotationSuppression(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"Svc.cls": "public with sharing class Svc {\n" +
			"    // apexfix:ignore QC001 # diagnostic hook\n" +
			"    public void run() { System.debug('keep'); }\n" +
			"}\n",
	})

	result, err := New(rules.DefaultRegistry).Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	debugFindings := result.ByRule["QC001"]
	if len(debugFindings) != 1 {
		t.Fatalf("QC001 findings = %d, want 1", len(debugFindings))
	}
	if !debugFindings[0].Ignored {
		t.Error("annotated finding should be marked ignored")
	}
	if debugFindings[0].IgnoreReason != "diagnostic hook" {
		t.Errorf("IgnoreReason = %q, want %q", debugFindings[0].IgnoreReason, "diagnostic hook")
	}
}

func TestScan_DisabledRule(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountService.cls": dirtyClass,
	})

	s := New(rules.DefaultRegistry)
	s.SetRuleConfig("QC001", &rules.RuleConfig{Enabled: false})

	result, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.ByRule["QC001"]) != 0 {
		t.Errorf("disabled rule produced %d findings", len(result.ByRule["QC001"]))
	}
}

func TestScan_SeverityOverride(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountService.cls": dirtyClass,
	})

	s := New(rules.DefaultRegistry)
	s.SetRuleConfig("QC001", &rules.RuleConfig{Enabled: true, Severity: types.SeverityHigh})

	result, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for _, f := range result.ByRule["QC001"] {
		if f.Severity != types.SeverityHigh {
			t.Errorf("Severity = %v, want High (configured override)", f.Severity)
		}
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	if _, err := New(rules.DefaultRegistry).Scan("/does/not/exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestScan_ScanTwiceIdentical(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"AccountService.cls": dirtyClass,
	})

	s := New(rules.DefaultRegistry)
	first, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("first Scan() error = %v", err)
	}
	second, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("second Scan() error = %v", err)
	}

	if len(first.Findings) != len(second.Findings) {
		t.Fatalf("idempotence broken: %d vs %d findings", len(first.Findings), len(second.Findings))
	}
	for i := range first.Findings {
		a, b := first.Findings[i], second.Findings[i]
		if a.RuleID != b.RuleID || a.Line != b.Line || a.Column != b.Column || a.Description != b.Description {
			t.Errorf("finding %d differs between scans", i)
		}
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path    string
		content string
		want    bool
	}{
		{"AccountServiceTest.cls", "", true},
		{"AccountService_Test.cls", "", true},
		{"TestAccountService.cls", "", true},
		{"AccountService.cls", "", false},
		{"AccountService.cls", "@IsTest\nprivate class AccountService {}", true},
		{"AccountService.cls", "@istest\nprivate class AccountService {}", true},
	}

	for _, tt := range tests {
		if got := IsTestFile(tt.path, tt.content); got != tt.want {
			t.Errorf("IsTestFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
