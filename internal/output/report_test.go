package output

import (
	"testing"

	"github.com/apexfix/apexfix-core/internal/fix"
	"github.com/apexfix/apexfix-core/internal/types"
	"github.com/apexfix/apexfix-core/internal/verify"
)

func TestReport_Compute(t *testing.T) {
	scan := types.NewScanResult("/project")
	critical := types.NewFinding("SEC003", "soql-injection", types.SeverityCritical, "A.cls", 3, 1, "")
	low := types.NewFinding("QC003", "trailing-whitespace", types.SeverityLow, "A.cls", 9, 1, "")
	scan.AddFinding(critical)
	scan.AddFinding(low)
	scan.Compute()

	report := NewReport("1.0.0", "/project", scan)
	report.Compute()
	if report.Result != "FAIL" {
		t.Errorf("Result = %q, want FAIL with a Critical finding above High", report.Result)
	}

	// Suppressed findings do not fail the run.
	critical.Ignored = true
	report.Compute()
	if report.Result != "PASS" {
		t.Errorf("Result = %q, want PASS when the Critical finding is suppressed", report.Result)
	}
	if report.RemainingCount() != 1 {
		t.Errorf("RemainingCount = %d, want 1 (the Low finding)", report.RemainingCount())
	}
}

func TestReport_ComputeSkipsVerifiedFixes(t *testing.T) {
	scan := types.NewScanResult("/project")
	f := types.NewFinding("SEC002", "missing-sharing-declaration", types.SeverityCritical, "A.cls", 1, 1, "")
	scan.AddFinding(f)
	scan.Compute()

	report := NewReport("1.0.0", "/project", scan)
	report.Verification = &verify.Result{
		Verified: []fix.FixedEntry{{Finding: f, Description: "added with sharing declaration"}},
	}
	report.Compute()
	if report.Result != "PASS" {
		t.Errorf("Result = %q, want PASS when the only failing finding was fixed and verified", report.Result)
	}
	if report.RemainingCount() != 0 {
		t.Errorf("RemainingCount = %d, want 0", report.RemainingCount())
	}
}

func TestReport_FailOnThreshold(t *testing.T) {
	scan := types.NewScanResult("/project")
	scan.AddFinding(types.NewFinding("QC001", "debug-statement", types.SeverityModerate, "A.cls", 2, 1, ""))
	scan.Compute()

	report := NewReport("1.0.0", "/project", scan)
	report.Compute()
	if report.Result != "PASS" {
		t.Errorf("Result = %q, want PASS for Moderate under default High threshold", report.Result)
	}

	report.FailOn = types.SeverityModerate
	report.Compute()
	if report.Result != "FAIL" {
		t.Errorf("Result = %q, want FAIL when the threshold is lowered to Moderate", report.Result)
	}
}
