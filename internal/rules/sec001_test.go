package rules

import (
	"strings"
	"testing"
)

func TestSEC001_DMLWithoutCheck(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"public with sharing class AccountService {",
		"    public void save() {",
		"        List<Account> accs = new List<Account>();",
		"        insert accs;",
		"    }",
		"}",
	}, "\n")

	findings := rule.Check("AccountService.cls", content)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Line != 4 {
		t.Errorf("Line = %d, want 4", f.Line)
	}
	if !f.Fixable {
		t.Error("expected finding to be fixable (object type inferable)")
	}
	if f.Context["operation"] != "insert" {
		t.Errorf("Context[operation] = %q, want %q", f.Context["operation"], "insert")
	}
	if f.Context["object"] != "Account" {
		t.Errorf("Context[object] = %q, want %q", f.Context["object"], "Account")
	}
}

func TestSEC001_MergeDetectedButNotFixable(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"public with sharing class Dedupe {",
		"    public void collapse() {",
		"        Account primary = pick();",
		"        merge primary;",
		"    }",
		"}",
	}, "\n")

	findings := rule.Check("Dedupe.cls", content)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Line != 4 {
		t.Errorf("Line = %d, want 4", f.Line)
	}
	if f.Context["operation"] != "merge" {
		t.Errorf("Context[operation] = %q, want %q", f.Context["operation"], "merge")
	}
	if f.Fixable {
		t.Error("merge has no matching permission guard and must stay manual")
	}
}

func TestSEC001_DMLTargetNotInferable(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"public with sharing class Svc {",
		"    public void save(SObject rec) {",
		"        update rec;",
		"    }",
		"}",
	}, "\n")

	findings := rule.Check("Svc.cls", content)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Fixable {
		t.Error("finding without an inferable target must not be fixable")
	}
	if _, ok := findings[0].Context["object"]; ok {
		t.Error("Context[object] should be absent when inference fails")
	}
}

func TestSEC001_NearbyCheckSuppresses(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"public with sharing class Svc {",
		"    public void save() {",
		"        List<Account> accs = new List<Account>();",
		"        if (!Schema.sObjectType.Account.isCreateable()) { throw new System.NoAccessException(); }",
		"        insert accs;",
		"    }",
		"}",
	}, "\n")

	if findings := rule.Check("Svc.cls", content); len(findings) != 0 {
		t.Errorf("expected 0 findings with nearby access check, got %d", len(findings))
	}
}

func TestSEC001_QueryFixable(t *testing.T) {
	rule := &SEC001{}
	content := "List<Contact> cs = [SELECT Id FROM Contact WHERE Email != null];"

	findings := rule.Check("Svc.cls", content)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if !f.Fixable {
		t.Error("single-line bracketed query should be fixable")
	}
	if f.Context["operation"] != "query" || f.Context["object"] != "Contact" {
		t.Errorf("context = %v, want operation=query object=Contact", f.Context)
	}
}

func TestSEC001_QueryMultiLineNotFixable(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"List<Contact> cs = [SELECT Id FROM Contact",
		"    WHERE Email != null];",
	}, "\n")

	findings := rule.Check("Svc.cls", content)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Fixable {
		t.Error("query without a closing bracket on the same line must not be fixable")
	}
}

func TestSEC001_SecurityEnforcedSuppresses(t *testing.T) {
	rule := &SEC001{}
	content := "List<Contact> cs = [SELECT Id FROM Contact WITH SECURITY_ENFORCED];"

	if findings := rule.Check("Svc.cls", content); len(findings) != 0 {
		t.Errorf("expected 0 findings for secured query, got %d", len(findings))
	}
}

func TestSEC001_CommentedOutDMLIgnored(t *testing.T) {
	rule := &SEC001{}
	content := "// insert accs;"

	if findings := rule.Check("Svc.cls", content); len(findings) != 0 {
		t.Errorf("expected 0 findings for commented DML, got %d", len(findings))
	}
}

func TestSEC001_Idempotent(t *testing.T) {
	rule := &SEC001{}
	content := strings.Join([]string{
		"List<Account> accs = new List<Account>();",
		"insert accs;",
	}, "\n")

	first := rule.Check("Svc.cls", content)
	second := rule.Check("Svc.cls", content)

	if len(first) != len(second) {
		t.Fatalf("idempotence broken: %d vs %d findings", len(first), len(second))
	}
	for i := range first {
		if first[i].Line != second[i].Line || first[i].Column != second[i].Column {
			t.Errorf("finding %d drifted between runs", i)
		}
	}
}
