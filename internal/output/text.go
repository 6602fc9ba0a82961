package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
)

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the pipeline report in text format
func (r *TextRenderer) Render(w io.Writer, report *Report) error {
	if !r.ColorEnabled {
		color.NoColor = true
	}

	fmt.Fprintf(w, "apexfix: scanned %s (%d files)\n\n", report.Target, report.Scan.FilesScanned)

	if report.Prioritized != nil {
		r.renderTiers(w, report.Prioritized)
	} else {
		for _, f := range report.Scan.Findings {
			r.renderFinding(w, f)
		}
	}

	if report.Fix != nil {
		r.renderFix(w, report)
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	r.renderSummary(w, report)
	r.renderResult(w, report)

	return nil
}

func (r *TextRenderer) renderTiers(w io.Writer, prioritized *priority.Result) {
	for _, tier := range priority.Order {
		tr := prioritized.Tiers[tier]
		if tr == nil || tr.Occurrences == 0 {
			continue
		}

		header := fmt.Sprintf("%s (%d findings / %d occurrences)", tr.Def.Name, tr.Findings, tr.Occurrences)
		fmt.Fprintln(w, r.colorTier(tier, header))
		fmt.Fprintf(w, "  %s\n\n", tr.Def.Rationale)

		for _, group := range tr.Rules {
			fmt.Fprintf(w, "  %s  %s  %s\n",
				r.colorSeverity(group.Severity), group.RuleID, group.RuleName)
			for _, fg := range group.Files {
				fmt.Fprintf(w, "    %s (%d)\n", fg.FilePath, fg.Occurrences)
				for _, f := range fg.Sample {
					fmt.Fprintf(w, "      line %d: %s\n", f.Line, f.Snippet)
				}
				if fg.Occurrences > len(fg.Sample) {
					fmt.Fprintf(w, "      ... and %d more\n", fg.Occurrences-len(fg.Sample))
				}
			}
			fmt.Fprintf(w, "    Guidance: %s\n\n", group.Guidance)
		}
	}
}

func (r *TextRenderer) renderFinding(w io.Writer, f *types.Finding) {
	fmt.Fprintf(w, "%s  %s  %s\n", r.colorSeverity(f.Severity), f.RuleID, f.RuleName)
	fmt.Fprintf(w, "  %s:%d\n", f.FilePath, f.Line)
	fmt.Fprintf(w, "  %s\n", f.Description)

	if f.Ignored {
		if f.IgnoreReason != "" {
			fmt.Fprintf(w, "  [IGNORED] reason=%q\n", f.IgnoreReason)
		} else {
			fmt.Fprintln(w, "  [IGNORED]")
		}
	}
	fmt.Fprintln(w)
}

func (r *TextRenderer) renderFix(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Fixes: %d applied, %d failed\n", len(report.Fix.Fixed), len(report.Fix.Failed))

	for _, entry := range report.Fix.Fixed {
		fmt.Fprintf(w, "  fixed %s:%d [%s] %s\n",
			entry.Finding.FilePath, entry.Finding.Line, entry.Finding.RuleID, entry.Description)
	}
	for _, entry := range report.Fix.Failed {
		fmt.Fprintf(w, "  failed %s:%d [%s] %s\n",
			entry.Finding.FilePath, entry.Finding.Line, entry.Finding.RuleID, entry.Reason)
	}

	if v := report.Verification; v != nil {
		fmt.Fprintf(w, "Verification: %d verified, %d unresolved, %d new violations\n",
			len(v.Verified), len(v.Unresolved), len(v.NewViolations))
		for _, rb := range v.Rollbacks {
			fmt.Fprintf(w, "  rolled back %s: %s\n", rb.FilePath, rb.Reason)
		}
	}
	fmt.Fprintln(w)
}

func (r *TextRenderer) renderSummary(w io.Writer, report *Report) {
	counts := report.Scan.SeverityCounts()
	parts := []string{}

	for _, sev := range []types.Severity{
		types.SeverityCritical, types.SeverityHigh, types.SeverityModerate,
		types.SeverityLow, types.SeverityInfo,
	} {
		if n := counts[sev.String()]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(sev.String())))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no issues found")
	}

	fmt.Fprintf(w, "Summary: %s\n", strings.Join(parts, ", "))
}

func (r *TextRenderer) renderResult(w io.Writer, report *Report) {
	if report.Result == "PASS" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(w, "Result: %s\n", green("PASS"))
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(w, "Result: %s (%d finding(s) at or above %s)\n",
			red("FAIL"), report.RemainingCount(), report.FailOn)
	}
}

func (r *TextRenderer) colorTier(t priority.Tier, s string) string {
	if !r.ColorEnabled {
		return s
	}
	switch t {
	case priority.TierCritical:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case priority.TierImportant:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgCyan, color.Bold).Sprint(s)
	}
}

func (r *TextRenderer) colorSeverity(s types.Severity) string {
	str := s.String()
	if !r.ColorEnabled {
		return str
	}

	switch s {
	case types.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(str)
	case types.SeverityHigh:
		return color.New(color.FgRed).Sprint(str)
	case types.SeverityModerate:
		return color.New(color.FgYellow).Sprint(str)
	case types.SeverityLow:
		return color.New(color.FgCyan).Sprint(str)
	default:
		return str
	}
}
