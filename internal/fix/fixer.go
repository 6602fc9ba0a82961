package fix

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
)

// DefaultBackupSuffix is appended to a file's path to form its backup path.
const DefaultBackupSuffix = ".backup"

// FixedEntry records one successfully applied fix.
type FixedEntry struct {
	Finding     *types.Finding `json:"finding"`
	Description string         `json:"description"`
}

// FailedEntry records one finding the fixer attempted but could not fix.
type FailedEntry struct {
	Finding *types.Finding `json:"finding"`
	Reason  string         `json:"reason"`
}

// Outcome is the aggregate result of a fix pass.
type Outcome struct {
	Fixed        []FixedEntry  `json:"fixed"`
	Failed       []FailedEntry `json:"failed"`
	UpdatedFiles []string      `json:"updated_files"`
}

// Fixer applies automated fixes to eligible findings. Fixes within a file are
// applied bottom-up so earlier line numbers stay valid, and each file is
// written back exactly once.
type Fixer struct {
	strategies    map[string]Strategy
	policy        *Policy
	prioritizer   *priority.Prioritizer
	logger        hclog.Logger
	backupSuffix  string
	requireBackup bool
}

// FixerOption configures a Fixer.
type FixerOption func(*Fixer)

// WithPolicy overrides the default fix policy.
func WithPolicy(p *Policy) FixerOption {
	return func(f *Fixer) { f.policy = p }
}

// WithBackupSuffix overrides the backup file suffix.
func WithBackupSuffix(suffix string) FixerOption {
	return func(f *Fixer) { f.backupSuffix = suffix }
}

// WithRequireBackup makes a failed backup abort fixes for that file instead
// of proceeding without one.
func WithRequireBackup(require bool) FixerOption {
	return func(f *Fixer) { f.requireBackup = require }
}

// WithLogger sets the logger used for fix progress and warnings.
func WithLogger(logger hclog.Logger) FixerOption {
	return func(f *Fixer) { f.logger = logger }
}

// WithStrategies replaces the built-in strategy set.
func WithStrategies(strategies map[string]Strategy) FixerOption {
	return func(f *Fixer) { f.strategies = strategies }
}

// NewFixer returns a Fixer with the built-in strategies and default policy.
func NewFixer(p *priority.Prioritizer, opts ...FixerOption) *Fixer {
	f := &Fixer{
		strategies:   DefaultStrategies(),
		policy:       DefaultPolicy(),
		prioritizer:  p,
		logger:       hclog.NewNullLogger(),
		backupSuffix: DefaultBackupSuffix,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BackupPath returns the backup path for filePath.
func (f *Fixer) BackupPath(filePath string) string {
	return filePath + f.backupSuffix
}

// Fix attempts to fix every eligible finding in result. Findings that are
// not fixable, come from test code, or are suppressed by an annotation are
// skipped silently; findings blocked by policy or lacking a strategy are
// recorded as failed.
func (f *Fixer) Fix(result *types.ScanResult) *Outcome {
	outcome := &Outcome{}

	byFile := map[string][]*types.Finding{}
	for _, finding := range result.Findings {
		if !finding.Fixable || finding.IsTestCode || finding.Ignored {
			continue
		}
		tier := f.prioritizer.TierFor(finding)
		if !f.policy.Allows(tier, finding) {
			outcome.Failed = append(outcome.Failed, FailedEntry{
				Finding: finding,
				Reason:  fmt.Sprintf("not eligible under %s policy for %s tier", f.policy.Mode(tier), f.prioritizer.Def(tier).Name),
			})
			continue
		}
		if _, ok := f.strategies[finding.RuleID]; !ok {
			outcome.Failed = append(outcome.Failed, FailedEntry{
				Finding: finding,
				Reason:  "no fix strategy registered",
			})
			continue
		}
		byFile[finding.FilePath] = append(byFile[finding.FilePath], finding)
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		f.fixFile(file, byFile[file], outcome)
	}
	return outcome
}

// fixFile applies all fixes for one file. A panic in a strategy fails the
// remaining findings for the file but never aborts the run.
func (f *Fixer) fixFile(filePath string, findings []*types.Finding, outcome *Outcome) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("fix strategy panicked", "file", filePath, "panic", r)
			for _, finding := range findings {
				outcome.Failed = append(outcome.Failed, FailedEntry{
					Finding: finding,
					Reason:  fmt.Sprintf("fix aborted: %v", r),
				})
			}
		}
	}()

	raw, err := os.ReadFile(filePath)
	if err != nil {
		f.logger.Error("failed to read file for fixing", "file", filePath, "error", err)
		for _, finding := range findings {
			outcome.Failed = append(outcome.Failed, FailedEntry{Finding: finding, Reason: "failed to read file"})
		}
		return
	}

	if err := f.backup(filePath, raw); err != nil {
		if f.requireBackup {
			f.logger.Error("backup failed, skipping file", "file", filePath, "error", err)
			for _, finding := range findings {
				outcome.Failed = append(outcome.Failed, FailedEntry{Finding: finding, Reason: "failed to create backup"})
			}
			return
		}
		f.logger.Warn("backup failed, fixing without backup", "file", filePath, "error", err)
	}

	// Descending line order keeps earlier findings' line numbers valid
	// while fixes insert or delete lines below them.
	sort.Slice(findings, func(i, j int) bool { return findings[i].Line > findings[j].Line })

	content := string(raw)
	var localFixed []FixedEntry
	var localFailed []FailedEntry

	for _, finding := range findings {
		res := f.strategies[finding.RuleID].Apply(content, finding)
		if !res.Success {
			localFailed = append(localFailed, FailedEntry{Finding: finding, Reason: res.Reason})
			continue
		}
		content = res.NewContent
		localFixed = append(localFixed, FixedEntry{Finding: finding, Description: res.Description})
		f.logger.Debug("applied fix", "file", filePath, "line", finding.Line, "rule", finding.RuleID)
	}

	if len(localFixed) > 0 {
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			f.logger.Error("failed to write fixed file", "file", filePath, "error", err)
			for _, entry := range localFixed {
				localFailed = append(localFailed, FailedEntry{Finding: entry.Finding, Reason: "failed to write fixes"})
			}
			localFixed = nil
		} else {
			outcome.UpdatedFiles = append(outcome.UpdatedFiles, filePath)
		}
	}

	outcome.Fixed = append(outcome.Fixed, localFixed...)
	outcome.Failed = append(outcome.Failed, localFailed...)
}

func (f *Fixer) backup(filePath string, content []byte) error {
	return os.WriteFile(f.BackupPath(filePath), content, 0o644)
}
