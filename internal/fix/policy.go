package fix

import (
	"fmt"
	"strings"

	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
)

// Mode controls whether findings in a tier are eligible for automated fixing.
type Mode int

const (
	// ModeNever disables automated fixes for the tier.
	ModeNever Mode = iota
	// ModeConditional allows fixes only for rules on the conditional allowlist.
	ModeConditional
	// ModeAlways allows fixes for every fixable finding in the tier.
	ModeAlways
)

func (m Mode) String() string {
	switch m {
	case ModeNever:
		return "never"
	case ModeConditional:
		return "conditional"
	case ModeAlways:
		return "always"
	default:
		return "unknown"
	}
}

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "never":
		return ModeNever, nil
	case "conditional":
		return ModeConditional, nil
	case "always":
		return ModeAlways, nil
	default:
		return ModeNever, fmt.Errorf("invalid fix mode %q: must be never, conditional or always", s)
	}
}

// Policy decides, per tier, whether a finding may be fixed automatically.
type Policy struct {
	modes            map[priority.Tier]Mode
	conditionalRules map[string]bool
}

// DefaultPolicy fixes well-understood security findings and cleanup findings,
// and leaves everything in the Important tier to manual review.
func DefaultPolicy() *Policy {
	return &Policy{
		modes: map[priority.Tier]Mode{
			priority.TierCritical:  ModeConditional,
			priority.TierImportant: ModeNever,
			priority.TierCleanup:   ModeAlways,
		},
		conditionalRules: map[string]bool{
			"SEC001": true,
			"SEC002": true,
		},
	}
}

// SetMode overrides the mode for one tier.
func (p *Policy) SetMode(tier priority.Tier, mode Mode) {
	p.modes[tier] = mode
}

// Mode returns the configured mode for tier.
func (p *Policy) Mode(tier priority.Tier) Mode {
	return p.modes[tier]
}

// Allows reports whether the policy permits fixing f, which has been
// classified into tier. It does not consider Fixable or ignore state;
// the fixer checks those separately.
func (p *Policy) Allows(tier priority.Tier, f *types.Finding) bool {
	switch p.modes[tier] {
	case ModeAlways:
		return true
	case ModeConditional:
		return p.conditionalRules[f.RuleID]
	default:
		return false
	}
}
