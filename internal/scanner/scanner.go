// Package scanner walks a target tree and applies every registered rule to
// every eligible Apex file.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/apexfix/apexfix-core/internal/annotation"
	"github.com/apexfix/apexfix-core/internal/pathfilter"
	"github.com/apexfix/apexfix-core/internal/rules"
	"github.com/apexfix/apexfix-core/internal/types"
)

// Scanner applies a rule registry to all matching files under a directory
type Scanner struct {
	registry    *rules.Registry
	filter      *pathfilter.Filter
	config      map[string]*rules.RuleConfig
	includeTest bool
	logger      hclog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithFilter sets the path filter
func WithFilter(f *pathfilter.Filter) Option {
	return func(s *Scanner) { s.filter = f }
}

// WithIncludeTestCode makes the scanner read files classified as test code.
// Their findings are reported but remain ineligible for auto-fix.
func WithIncludeTestCode(include bool) Option {
	return func(s *Scanner) { s.includeTest = include }
}

// WithLogger sets the logger
func WithLogger(logger hclog.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// New creates a Scanner over the given registry. The registry is passed in
// explicitly so tests can scan with an isolated rule set.
func New(registry *rules.Registry, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		filter:   pathfilter.Default(),
		config:   make(map[string]*rules.RuleConfig),
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRuleConfig overrides the configuration for a specific rule
func (s *Scanner) SetRuleConfig(ruleID string, cfg *rules.RuleConfig) {
	s.config[ruleID] = cfg
}

// ruleConfig returns the effective configuration for a rule
func (s *Scanner) ruleConfig(rule rules.Rule) *rules.RuleConfig {
	if cfg, ok := s.config[rule.ID()]; ok {
		return cfg
	}
	return rules.DefaultRuleConfig(rule)
}

// Scan walks dir and returns the aggregated findings of all enabled rules
func (s *Scanner) Scan(dir string) (*types.ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	files, err := s.filter.Walk(absDir, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	result := types.NewScanResult(absDir)
	for _, path := range files {
		s.scanFile(path, result)
	}
	result.Compute()

	s.logger.Debug("scan complete",
		"dir", absDir,
		"files", result.FilesScanned,
		"violations", len(result.Findings))
	return result, nil
}

// scanFile applies every enabled rule to one file. Failures are isolated:
// an unreadable file or a panicking rule never aborts the scan.
func (s *Scanner) scanFile(path string, result *types.ScanResult) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("skipping unreadable file", "file", path, "error", err)
		return
	}
	content := string(data)

	testCode := IsTestFile(path, content)
	if testCode && !s.includeTest {
		s.logger.Debug("skipping test code", "file", path)
		return
	}

	result.FilesScanned++

	var findings []*types.Finding
	for _, rule := range s.registry.All() {
		cfg := s.ruleConfig(rule)
		if !cfg.Enabled {
			continue
		}
		fs := s.checkRule(rule, path, content)
		for _, f := range fs {
			if cfg.Severity != rule.DefaultSeverity() {
				f.Severity = cfg.Severity
			}
		}
		findings = append(findings, fs...)
	}

	annotation.Apply(annotation.ParseFile(path, data), findings)

	for _, f := range findings {
		f.IsTestCode = testCode
		result.AddFinding(f)
	}
}

// checkRule runs one rule against one file, containing panics so a broken
// detector cannot crash the whole scan
func (s *Scanner) checkRule(rule rules.Rule, path, content string) (findings []*types.Finding) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("rule panicked, skipping", "rule", rule.ID(), "file", path, "panic", r)
			findings = nil
		}
	}()
	return rule.Check(path, content)
}
