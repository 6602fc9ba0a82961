// Package config handles loading and validating apexfix configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/apexfix/apexfix-core/internal/types"
)

// FileName is the config file searched for in the working directory and the
// scan target.
const FileName = ".apexfix.hcl"

// Config represents the apexfix configuration
type Config struct {
	Version int           `hcl:"version,attr"`
	Paths   *PathsConfig  `hcl:"paths,block"`
	Output  *OutputConfig `hcl:"output,block"`
	Policy  *PolicyConfig `hcl:"policy,block"`
	Fix     *FixConfig    `hcl:"fix,block"`
	Rules   []*RuleConfig `hcl:"rule,block"`

	// Internal: path to the loaded config file (empty if using defaults)
	configPath string
}

// PathsConfig defines path filtering settings
type PathsConfig struct {
	Include []string `hcl:"include,optional"`
	Exclude []string `hcl:"exclude,optional"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	Format string `hcl:"format,optional"`
	Color  string `hcl:"color,optional"`
}

// PolicyConfig defines CI policy settings
type PolicyConfig struct {
	FailOn          string `hcl:"fail_on,optional"`
	IncludeTestCode bool   `hcl:"include_test_code,optional"`
}

// FixConfig defines auto-fix behavior per priority tier plus backup handling
type FixConfig struct {
	Critical       string `hcl:"critical,optional"`
	Important      string `hcl:"important,optional"`
	Cleanup        string `hcl:"cleanup,optional"`
	CleanupBackups bool   `hcl:"cleanup_backups,optional"`
	RequireBackup  bool   `hcl:"require_backup,optional"`
	BackupSuffix   string `hcl:"backup_suffix,optional"`
}

// RuleConfig defines per-rule configuration
type RuleConfig struct {
	ID       string  `hcl:"id,label"`
	Enabled  *bool   `hcl:"enabled,attr"`
	Severity *string `hcl:"severity,attr"`
}

// ConfigPath returns the path to the loaded config file, or empty if using defaults
func (c *Config) ConfigPath() string {
	return c.configPath
}

// GetRuleConfig returns the configuration for a specific rule, or nil if not configured
func (c *Config) GetRuleConfig(ruleID string) *RuleConfig {
	for _, rc := range c.Rules {
		if rc.ID == ruleID {
			return rc
		}
	}
	return nil
}

// IsRuleEnabled returns whether a rule is enabled based on config
func (c *Config) IsRuleEnabled(ruleID string) bool {
	rc := c.GetRuleConfig(ruleID)
	if rc == nil || rc.Enabled == nil {
		return true // enabled by default
	}
	return *rc.Enabled
}

// GetRuleSeverity returns the configured severity for a rule, or the default if not configured
func (c *Config) GetRuleSeverity(ruleID string, defaultSeverity types.Severity) types.Severity {
	rc := c.GetRuleConfig(ruleID)
	if rc == nil || rc.Severity == nil {
		return defaultSeverity
	}
	sev, err := types.ParseSeverity(*rc.Severity)
	if err != nil {
		return defaultSeverity
	}
	return sev
}

// Load loads configuration from the specified path or searches for it.
// Search order: configPath (if provided), .apexfix.hcl in cwd, .apexfix.hcl
// in the scan target directory.
func Load(configPath, targetDir string) (*Config, error) {
	var path string

	if configPath != "" {
		path = configPath
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		path = findConfigFile(targetDir)
	}

	if path == "" {
		return Default(), nil
	}

	return loadFromFile(path)
}

// findConfigFile searches for .apexfix.hcl in standard locations
func findConfigFile(targetDir string) string {
	cwd, err := os.Getwd()
	if err == nil {
		cwdPath := filepath.Join(cwd, FileName)
		if _, err := os.Stat(cwdPath); err == nil {
			return cwdPath
		}
	}

	if targetDir != "" {
		targetPath := filepath.Join(targetDir, FileName)
		if _, err := os.Stat(targetPath); err == nil {
			return targetPath
		}
	}

	return ""
}

// loadFromFile loads and parses a configuration file
func loadFromFile(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", formatDiagnostics(diags))
	}

	var config Config
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &config)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", formatDiagnostics(decodeDiags))
	}

	config.configPath = path

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// formatDiagnostics formats HCL diagnostics into a readable error string
func formatDiagnostics(diags hcl.Diagnostics) string {
	if len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	for i, diag := range diags {
		if i > 0 {
			b.WriteString("; ")
		}
		if diag.Subject != nil {
			fmt.Fprintf(&b, "%s:%d: ", diag.Subject.Filename, diag.Subject.Start.Line)
		}
		b.WriteString(diag.Summary)
		if diag.Detail != "" {
			b.WriteString(": ")
			b.WriteString(diag.Detail)
		}
	}
	return b.String()
}

// applyDefaults fills in default values for missing optional config blocks
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Paths == nil {
		cfg.Paths = defaults.Paths
	} else if len(cfg.Paths.Include) == 0 {
		cfg.Paths.Include = defaults.Paths.Include
	}

	if cfg.Output == nil {
		cfg.Output = defaults.Output
	} else {
		if cfg.Output.Format == "" {
			cfg.Output.Format = defaults.Output.Format
		}
		if cfg.Output.Color == "" {
			cfg.Output.Color = defaults.Output.Color
		}
	}

	if cfg.Policy == nil {
		cfg.Policy = defaults.Policy
	} else if cfg.Policy.FailOn == "" {
		cfg.Policy.FailOn = defaults.Policy.FailOn
	}

	if cfg.Fix == nil {
		cfg.Fix = defaults.Fix
	} else {
		if cfg.Fix.Critical == "" {
			cfg.Fix.Critical = defaults.Fix.Critical
		}
		if cfg.Fix.Important == "" {
			cfg.Fix.Important = defaults.Fix.Important
		}
		if cfg.Fix.Cleanup == "" {
			cfg.Fix.Cleanup = defaults.Fix.Cleanup
		}
		if cfg.Fix.BackupSuffix == "" {
			cfg.Fix.BackupSuffix = defaults.Fix.BackupSuffix
		}
	}
}
