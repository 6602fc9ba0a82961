package priority

import (
	"sort"

	"github.com/apexfix/apexfix-core/internal/types"
)

// SampleCap is the number of member findings kept per file group for display
const SampleCap = 5

// FileGroup aggregates one rule's occurrences within a single file
type FileGroup struct {
	FilePath    string           `json:"file_path"`
	Occurrences int              `json:"occurrences"`
	Sample      []*types.Finding `json:"sample"`
}

// RuleGroup aggregates one rule across all files in a tier. A "finding" in
// the report is a rule+file pair; an "occurrence" is a raw instance. The
// distinction is the principal noise-reduction mechanism: thousands of
// trivial occurrences collapse into a handful of actionable groups.
type RuleGroup struct {
	RuleID      string         `json:"rule_id"`
	RuleName    string         `json:"rule_name"`
	Severity    types.Severity `json:"severity"`
	Guidance    string         `json:"guidance"`
	Files       []*FileGroup   `json:"files"`
	FileCount   int            `json:"file_count"`
	Occurrences int            `json:"occurrences"`
}

// TierReport holds everything reported for one tier
type TierReport struct {
	Def         *TierDef     `json:"tier"`
	Rules       []*RuleGroup `json:"rules"`
	Findings    int          `json:"findings"`
	Occurrences int          `json:"occurrences"`
}

// TierStats summarizes one tier for the top-level summary
type TierStats struct {
	Findings    int            `json:"findings"`
	Occurrences int            `json:"occurrences"`
	Rules       map[string]int `json:"rules"`
}

// Summary is the top-level statistics block
type Summary struct {
	Tiers            map[string]TierStats `json:"tiers"`
	TotalFindings    int                  `json:"total_findings"`
	TotalOccurrences int                  `json:"total_occurrences"`
}

// Result is the prioritized view of a scan
type Result struct {
	Summary Summary              `json:"summary"`
	Tiers   map[Tier]*TierReport `json:"-"`
}

// Prioritizer classifies findings into tiers using a static rule table
type Prioritizer struct {
	defs       map[Tier]*TierDef
	tierByRule map[string]Tier
}

// New creates a Prioritizer from explicit tier definitions. Passing the table
// in keeps the classification testable with synthetic tiers.
func New(defs []*TierDef) *Prioritizer {
	p := &Prioritizer{
		defs:       make(map[Tier]*TierDef),
		tierByRule: make(map[string]Tier),
	}
	for _, def := range defs {
		p.defs[def.Tier] = def
		for _, id := range def.RuleIDs {
			p.tierByRule[id] = def.Tier
		}
	}
	return p
}

// NewDefault creates a Prioritizer with the built-in tier table
func NewDefault() *Prioritizer {
	return New(DefaultTierDefs())
}

// Def returns the definition of a tier
func (p *Prioritizer) Def(t Tier) *TierDef {
	return p.defs[t]
}

// TierFor classifies one finding, falling back to its severity when the rule
// is not in the table
func (p *Prioritizer) TierFor(f *types.Finding) Tier {
	if t, ok := p.tierByRule[f.RuleID]; ok {
		return t
	}
	return TierForSeverity(f.Severity)
}

// Prioritize partitions a scan result into tiers and groups each tier's
// findings by rule, then by file. Every input finding lands in exactly one
// tier and one group.
func (p *Prioritizer) Prioritize(scan *types.ScanResult) *Result {
	// tier -> rule -> file -> findings
	partition := make(map[Tier]map[string]map[string][]*types.Finding)
	for _, f := range scan.Findings {
		tier := p.TierFor(f)
		if partition[tier] == nil {
			partition[tier] = make(map[string]map[string][]*types.Finding)
		}
		if partition[tier][f.RuleID] == nil {
			partition[tier][f.RuleID] = make(map[string][]*types.Finding)
		}
		partition[tier][f.RuleID][f.FilePath] = append(partition[tier][f.RuleID][f.FilePath], f)
	}

	result := &Result{
		Summary: Summary{Tiers: make(map[string]TierStats)},
		Tiers:   make(map[Tier]*TierReport),
	}

	for _, tier := range Order {
		report := &TierReport{Def: p.defs[tier]}
		stats := TierStats{Rules: make(map[string]int)}

		for ruleID, byFile := range partition[tier] {
			group := &RuleGroup{
				RuleID:   ruleID,
				Guidance: GuidanceFor(ruleID),
			}
			for filePath, findings := range byFile {
				sample := findings
				if len(sample) > SampleCap {
					sample = sample[:SampleCap]
				}
				group.Files = append(group.Files, &FileGroup{
					FilePath:    filePath,
					Occurrences: len(findings),
					Sample:      sample,
				})
				group.Occurrences += len(findings)
				group.RuleName = findings[0].RuleName
				group.Severity = findings[0].Severity
			}
			sort.Slice(group.Files, func(i, j int) bool {
				return group.Files[i].FilePath < group.Files[j].FilePath
			})
			group.FileCount = len(group.Files)

			report.Rules = append(report.Rules, group)
			report.Findings += group.FileCount
			report.Occurrences += group.Occurrences
			stats.Rules[ruleID] = group.Occurrences
		}

		// Busiest rules first; rule ID breaks ties for determinism
		sort.Slice(report.Rules, func(i, j int) bool {
			if report.Rules[i].Occurrences != report.Rules[j].Occurrences {
				return report.Rules[i].Occurrences > report.Rules[j].Occurrences
			}
			return report.Rules[i].RuleID < report.Rules[j].RuleID
		})

		stats.Findings = report.Findings
		stats.Occurrences = report.Occurrences
		result.Tiers[tier] = report
		result.Summary.Tiers[tier.Key()] = stats
		result.Summary.TotalFindings += report.Findings
		result.Summary.TotalOccurrences += report.Occurrences
	}

	return result
}
