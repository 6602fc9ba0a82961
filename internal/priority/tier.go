// Package priority classifies findings into fixed risk tiers and aggregates
// them into rule+file groups for reporting.
package priority

import "github.com/apexfix/apexfix-core/internal/types"

// Tier is one of three fixed risk categories
type Tier int

const (
	// TierCritical holds security and data-access rules
	TierCritical Tier = iota
	// TierImportant holds performance and maintainability rules
	TierImportant
	// TierCleanup holds style and hygiene rules
	TierCleanup
)

// Order lists the tiers in display order
var Order = []Tier{TierCritical, TierImportant, TierCleanup}

// String returns the display name of the tier
func (t Tier) String() string {
	switch t {
	case TierCritical:
		return "Critical"
	case TierImportant:
		return "Important"
	default:
		return "Cleanup"
	}
}

// Key returns the stable lowercase key used in serialized output
func (t Tier) Key() string {
	switch t {
	case TierCritical:
		return "critical"
	case TierImportant:
		return "important"
	default:
		return "cleanup"
	}
}

// TierDef describes one tier: its static rule membership, the human-facing
// rationale, and whether its rules may be auto-fixed unconditionally
type TierDef struct {
	Tier           Tier     `json:"-"`
	Name           string   `json:"name"`
	Rationale      string   `json:"rationale"`
	RuleIDs        []string `json:"rule_ids"`
	AutoFixAllowed bool     `json:"auto_fix_allowed"`
}

// DefaultTierDefs returns the static tier table
func DefaultTierDefs() []*TierDef {
	return []*TierDef{
		{
			Tier:           TierCritical,
			Name:           "Critical",
			Rationale:      "Security and data-access violations that can expose records or bypass permission checks",
			RuleIDs:        []string{"SEC001", "SEC002", "SEC003"},
			AutoFixAllowed: false,
		},
		{
			Tier:           TierImportant,
			Name:           "Important",
			Rationale:      "Performance and maintainability issues that degrade the codebase over time",
			RuleIDs:        []string{"QC001", "QC002"},
			AutoFixAllowed: false,
		},
		{
			Tier:           TierCleanup,
			Name:           "Cleanup",
			Rationale:      "Style and hygiene issues that are safe to fix mechanically",
			RuleIDs:        []string{"QC003"},
			AutoFixAllowed: true,
		},
	}
}

// TierForSeverity is the fallback classification for rules missing from the
// tier table: Critical/High map to Critical, Moderate to Important, the rest
// to Cleanup
func TierForSeverity(s types.Severity) Tier {
	switch {
	case s >= types.SeverityHigh:
		return TierCritical
	case s == types.SeverityModerate:
		return TierImportant
	default:
		return TierCleanup
	}
}
