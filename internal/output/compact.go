package output

import (
	"fmt"
	"io"
)

// CompactRenderer renders output in a condensed single-line-per-issue format
// This format is useful for logs and quick scanning
type CompactRenderer struct{}

// Render writes the scan findings in compact format
// Format: filename:line:column: severity: [rule_id] message
func (r *CompactRenderer) Render(w io.Writer, report *Report) error {
	for _, f := range report.Scan.Findings {
		if f.Ignored {
			continue
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: [%s] %s\n",
			f.FilePath, f.Line, f.Column, f.Severity, f.RuleID, f.Description)
	}
	return nil
}
