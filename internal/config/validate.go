package config

import (
	"fmt"

	"github.com/apexfix/apexfix-core/internal/rules"
	"github.com/apexfix/apexfix-core/internal/types"
)

var validFormats = map[string]bool{
	"text":    true,
	"json":    true,
	"sarif":   true,
	"compact": true,
	"html":    true,
}

var validFixModes = map[string]bool{
	"never":       true,
	"conditional": true,
	"always":      true,
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (only version 1 is supported)", cfg.Version)
	}

	if cfg.Output != nil && cfg.Output.Format != "" && !validFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json', 'sarif', 'compact' or 'html')", cfg.Output.Format)
	}

	if cfg.Output != nil && cfg.Output.Color != "" {
		switch cfg.Output.Color {
		case "auto", "always", "never":
		default:
			return fmt.Errorf("invalid color mode: %s (must be 'auto', 'always', or 'never')", cfg.Output.Color)
		}
	}

	if cfg.Policy != nil && cfg.Policy.FailOn != "" {
		if _, err := types.ParseSeverity(cfg.Policy.FailOn); err != nil {
			return fmt.Errorf("invalid fail_on severity: %s", cfg.Policy.FailOn)
		}
	}

	if cfg.Fix != nil {
		for tier, mode := range map[string]string{
			"critical":  cfg.Fix.Critical,
			"important": cfg.Fix.Important,
			"cleanup":   cfg.Fix.Cleanup,
		} {
			if mode != "" && !validFixModes[mode] {
				return fmt.Errorf("invalid fix mode for %s tier: %s (must be 'never', 'conditional' or 'always')", tier, mode)
			}
		}
	}

	for _, rule := range cfg.Rules {
		if !ValidateRuleID(rule.ID) {
			return fmt.Errorf("unknown rule ID: %s", rule.ID)
		}
		if rule.Severity != nil {
			if _, err := types.ParseSeverity(*rule.Severity); err != nil {
				return fmt.Errorf("invalid severity for rule %s: %s", rule.ID, *rule.Severity)
			}
		}
	}

	return nil
}

// ValidateRuleID checks if a rule ID is registered
func ValidateRuleID(ruleID string) bool {
	_, ok := rules.DefaultRegistry.Get(ruleID)
	return ok
}
