package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apexfix/apexfix-core/internal/types"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ConfigPath() != "" {
		t.Errorf("ConfigPath = %q, want empty for defaults", cfg.ConfigPath())
	}
	if cfg.Output.Format != "text" || cfg.Output.Color != "auto" {
		t.Errorf("output defaults = %+v", cfg.Output)
	}
	if cfg.Policy.FailOn != "High" {
		t.Errorf("FailOn = %q, want High", cfg.Policy.FailOn)
	}
	if cfg.Fix.Critical != "conditional" || cfg.Fix.Important != "never" || cfg.Fix.Cleanup != "always" {
		t.Errorf("fix defaults = %+v", cfg.Fix)
	}
	if cfg.Fix.BackupSuffix != ".backup" {
		t.Errorf("BackupSuffix = %q", cfg.Fix.BackupSuffix)
	}
	if len(cfg.Paths.Include) != 2 {
		t.Errorf("Include = %v, want cls and trigger patterns", cfg.Paths.Include)
	}
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version = 1

paths {
  include = ["src/**/*.cls"]
  exclude = ["src/generated/**"]
}

output {
  format = "json"
  color  = "never"
}

policy {
  fail_on           = "Critical"
  include_test_code = true
}

fix {
  critical        = "never"
  cleanup         = "always"
  cleanup_backups = true
  backup_suffix   = ".orig"
}

rule "QC001" {
  enabled  = false
  severity = null
}

rule "SEC002" {
  enabled  = null
  severity = "High"
}
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ConfigPath() != path {
		t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath(), path)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "never" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if !cfg.Policy.IncludeTestCode || cfg.Policy.FailOn != "Critical" {
		t.Errorf("policy = %+v", cfg.Policy)
	}
	if cfg.Fix.Critical != "never" {
		t.Errorf("Fix.Critical = %q", cfg.Fix.Critical)
	}
	// Unset fix attrs fall back to defaults.
	if cfg.Fix.Important != "never" {
		t.Errorf("Fix.Important = %q, want default never", cfg.Fix.Important)
	}
	if !cfg.Fix.CleanupBackups || cfg.Fix.BackupSuffix != ".orig" {
		t.Errorf("fix = %+v", cfg.Fix)
	}

	if cfg.IsRuleEnabled("QC001") {
		t.Error("QC001 should be disabled")
	}
	if !cfg.IsRuleEnabled("SEC002") {
		t.Error("SEC002 should stay enabled")
	}
	if got := cfg.GetRuleSeverity("SEC002", types.SeverityCritical); got != types.SeverityHigh {
		t.Errorf("SEC002 severity = %v, want High", got)
	}
	if got := cfg.GetRuleSeverity("QC003", types.SeverityLow); got != types.SeverityLow {
		t.Errorf("unconfigured rule severity = %v, want default", got)
	}
}

func TestLoad_SearchesTargetDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "version = 1\n\noutput {\n  format = \"compact\"\n}\n")

	cfg, err := Load("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "compact" {
		t.Errorf("Format = %q, want compact from target dir config", cfg.Output.Format)
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.hcl"), ""); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidHCL(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "version = \n")

	if _, err := Load(path, ""); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("err = %v, want parse failure", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad version",
			mutate:  func(c *Config) { c.Version = 2 },
			wantErr: "unsupported config version",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "bad color",
			mutate:  func(c *Config) { c.Output.Color = "maybe" },
			wantErr: "invalid color mode",
		},
		{
			name:    "bad fail_on",
			mutate:  func(c *Config) { c.Policy.FailOn = "Catastrophic" },
			wantErr: "invalid fail_on severity",
		},
		{
			name:    "bad fix mode",
			mutate:  func(c *Config) { c.Fix.Important = "sometimes" },
			wantErr: "invalid fix mode",
		},
		{
			name: "unknown rule",
			mutate: func(c *Config) {
				c.Rules = []*RuleConfig{{ID: "XX999"}}
			},
			wantErr: "unknown rule ID",
		},
		{
			name: "bad rule severity",
			mutate: func(c *Config) {
				sev := "Extreme"
				c.Rules = []*RuleConfig{{ID: "SEC001", Severity: &sev}}
			},
			wantErr: "invalid severity for rule SEC001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
