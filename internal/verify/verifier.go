package verify

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/apexfix/apexfix-core/internal/fix"
	"github.com/apexfix/apexfix-core/internal/types"
)

// DefaultLineTolerance is how far a finding may drift between the baseline
// scan and the post-fix scan and still be treated as the same finding.
// Fixes insert and delete lines, so exact line matching would misreport
// every finding below a fix as both resolved and new.
const DefaultLineTolerance = 5

// Rollback records a file restored from backup because fixing it introduced
// new violations.
type Rollback struct {
	FilePath        string `json:"file_path"`
	Reason          string `json:"reason"`
	RegressionCount int    `json:"regression_count"`
}

// Result is the outcome of verifying a fix pass against a fresh scan.
type Result struct {
	Verified      []fix.FixedEntry `json:"verified"`
	Unresolved    []fix.FixedEntry `json:"unresolved"`
	NewViolations []*types.Finding `json:"new_violations"`
	Rollbacks     []Rollback       `json:"rollbacks"`
}

// Scanner re-scans a directory. *scanner.Scanner satisfies it.
type Scanner interface {
	Scan(dir string) (*types.ScanResult, error)
}

// Verifier re-scans fixed files to confirm each applied fix resolved its
// finding without introducing new ones, and rolls back files where fixing
// made things worse.
type Verifier struct {
	scanner        Scanner
	logger         hclog.Logger
	tolerance      int
	backupSuffix   string
	cleanupBackups bool
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger used for verification progress.
func WithLogger(logger hclog.Logger) Option {
	return func(v *Verifier) { v.logger = logger }
}

// WithLineTolerance overrides the line drift tolerance.
func WithLineTolerance(tolerance int) Option {
	return func(v *Verifier) { v.tolerance = tolerance }
}

// WithBackupSuffix overrides the backup file suffix.
func WithBackupSuffix(suffix string) Option {
	return func(v *Verifier) { v.backupSuffix = suffix }
}

// WithCleanupBackups removes backups of files that verified clean. Backups
// of rolled-back files are always consumed by the restore.
func WithCleanupBackups(cleanup bool) Option {
	return func(v *Verifier) { v.cleanupBackups = cleanup }
}

// New returns a Verifier that re-scans with s.
func New(s Scanner, opts ...Option) *Verifier {
	v := &Verifier{
		scanner:      s,
		logger:       hclog.NewNullLogger(),
		tolerance:    DefaultLineTolerance,
		backupSuffix: fix.DefaultBackupSuffix,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify re-scans dir and compares the result to the pre-fix baseline. A fix
// is verified when no finding for the same rule remains within the line
// tolerance; a post-fix finding with no baseline counterpart in an updated
// file is a regression, and its file is restored from backup.
func (v *Verifier) Verify(dir string, baseline *types.ScanResult, outcome *fix.Outcome) (*Result, error) {
	result := &Result{}
	if outcome == nil || len(outcome.UpdatedFiles) == 0 {
		return result, nil
	}

	rescan, err := v.scanner.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("verification re-scan failed: %w", err)
	}

	updated := map[string]bool{}
	for _, file := range outcome.UpdatedFiles {
		updated[file] = true
	}

	for _, entry := range outcome.Fixed {
		if v.stillPresent(rescan, entry.Finding) {
			result.Unresolved = append(result.Unresolved, entry)
			v.logger.Warn("fix did not resolve finding",
				"rule", entry.Finding.RuleID, "file", entry.Finding.FilePath, "line", entry.Finding.Line)
		} else {
			result.Verified = append(result.Verified, entry)
		}
	}

	regressions := map[string][]*types.Finding{}
	for _, f := range rescan.Findings {
		if !updated[f.FilePath] || f.Ignored {
			continue
		}
		if !v.inBaseline(baseline, f) {
			regressions[f.FilePath] = append(regressions[f.FilePath], f)
			result.NewViolations = append(result.NewViolations, f)
		}
	}

	for _, file := range outcome.UpdatedFiles {
		if newFindings := regressions[file]; len(newFindings) > 0 {
			v.rollback(file, len(newFindings), result)
			continue
		}
		if v.cleanupBackups {
			if err := os.Remove(file + v.backupSuffix); err != nil && !os.IsNotExist(err) {
				v.logger.Warn("failed to remove backup", "file", file, "error", err)
			}
		}
	}

	return result, nil
}

// stillPresent reports whether a finding for the same rule remains in f's
// file within the line tolerance.
func (v *Verifier) stillPresent(rescan *types.ScanResult, f *types.Finding) bool {
	for _, other := range rescan.ByFile[f.FilePath] {
		if f.Matches(other, v.tolerance) {
			return true
		}
	}
	return false
}

// inBaseline reports whether f corresponds to a pre-fix finding.
func (v *Verifier) inBaseline(baseline *types.ScanResult, f *types.Finding) bool {
	for _, other := range baseline.ByFile[f.FilePath] {
		if f.Matches(other, v.tolerance) {
			return true
		}
	}
	return false
}

// rollback restores file from its backup. The rollback is recorded only
// when the restore succeeds; a failed restore leaves the fixed content and
// the backup in place for manual recovery.
func (v *Verifier) rollback(file string, regressionCount int, result *Result) {
	backupPath := file + v.backupSuffix
	raw, err := os.ReadFile(backupPath)
	if err != nil {
		v.logger.Error("cannot roll back, backup unreadable", "file", file, "error", err)
		return
	}
	if err := os.WriteFile(file, raw, 0o644); err != nil {
		v.logger.Error("failed to restore file from backup", "file", file, "error", err)
		return
	}
	if err := os.Remove(backupPath); err != nil {
		v.logger.Warn("restored file but failed to remove backup", "file", file, "error", err)
	}

	v.logger.Warn("rolled back file", "file", file, "new_violations", regressionCount)
	result.Rollbacks = append(result.Rollbacks, Rollback{
		FilePath:        file,
		Reason:          fmt.Sprintf("fix introduced %d new violation(s)", regressionCount),
		RegressionCount: regressionCount,
	})
}
