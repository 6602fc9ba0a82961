package types

import "time"

// ScanResult aggregates the findings of one scan over a target tree
type ScanResult struct {
	// TargetDir is the absolute path of the scanned directory
	TargetDir string `json:"target_dir"`

	// FilesScanned is the number of files the scanner actually read
	FilesScanned int `json:"files_scanned"`

	// TotalViolations is len(Findings), kept explicit for reporting
	TotalViolations int `json:"total_violations"`

	// Findings is the flat list of all findings in detection order
	Findings []*Finding `json:"findings"`

	// ByFile groups findings by file path
	ByFile map[string][]*Finding `json:"-"`

	// ByRule groups findings by rule ID
	ByRule map[string][]*Finding `json:"-"`

	// BySeverity groups findings by severity
	BySeverity map[Severity][]*Finding `json:"-"`

	// ScannedAt is when the scan completed
	ScannedAt time.Time `json:"scanned_at"`
}

// NewScanResult creates an empty ScanResult for the given directory
func NewScanResult(targetDir string) *ScanResult {
	return &ScanResult{
		TargetDir:  targetDir,
		Findings:   make([]*Finding, 0),
		ByFile:     make(map[string][]*Finding),
		ByRule:     make(map[string][]*Finding),
		BySeverity: make(map[Severity][]*Finding),
	}
}

// AddFinding appends a finding and indexes it by file, rule, and severity
func (r *ScanResult) AddFinding(f *Finding) {
	r.Findings = append(r.Findings, f)
	r.ByFile[f.FilePath] = append(r.ByFile[f.FilePath], f)
	r.ByRule[f.RuleID] = append(r.ByRule[f.RuleID], f)
	r.BySeverity[f.Severity] = append(r.BySeverity[f.Severity], f)
}

// Compute finalizes derived fields after all findings have been added
func (r *ScanResult) Compute() {
	r.TotalViolations = len(r.Findings)
	r.ScannedAt = time.Now()
}

// SeverityCounts returns the number of findings per severity
func (r *ScanResult) SeverityCounts() map[string]int {
	counts := make(map[string]int)
	for sev, findings := range r.BySeverity {
		counts[sev.String()] = len(findings)
	}
	return counts
}
