package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/apexfix/apexfix-core/internal/config"
	"github.com/apexfix/apexfix-core/internal/fix"
	"github.com/apexfix/apexfix-core/internal/output"
	"github.com/apexfix/apexfix-core/internal/pathfilter"
	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/rules"
	"github.com/apexfix/apexfix-core/internal/scanner"
	"github.com/apexfix/apexfix-core/internal/types"
	"github.com/apexfix/apexfix-core/internal/verify"
)

var (
	fixFlag         bool
	includeTestFlag bool
	formatFlag      string
	outputFlag      string
	failOnFlag      string
	colorFlag       string
	quietFlag       bool
	verboseFlag     bool
	configFlag      string
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a directory of Apex source and evaluate policy",
	Long: `Scan a directory tree for .cls and .trigger files, apply every enabled
rule, and report the findings grouped into Critical, Important and Cleanup
tiers.

With --fix, eligible findings are fixed in place. Every modified file gets a
sibling backup first, and a verification re-scan rolls back any file whose
fix introduced new violations.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&fixFlag, "fix", false, "Apply automated fixes to eligible findings")
	scanCmd.Flags().BoolVar(&includeTestFlag, "include-test", false, "Scan files classified as test code")
	scanCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text, json, sarif, compact, html")
	scanCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write output to file instead of stdout")
	scanCmd.Flags().StringVar(&failOnFlag, "fail-on", "High", "Fail on severity: Critical, High, Moderate, Low, Info")
	scanCmd.Flags().StringVar(&colorFlag, "color", "auto", "Color mode: auto, always, never")
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-error output")
	scanCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	scanCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default: .apexfix.hcl)")
}

func runScan(cmd *cobra.Command, args []string) error {
	targetDir := args[0]

	cfg, err := config.Load(configFlag, targetDir)
	if err != nil {
		return err
	}

	// Explicit flags win over config file values
	if !cmd.Flags().Changed("format") {
		formatFlag = cfg.Output.Format
	}
	if !cmd.Flags().Changed("color") {
		colorFlag = cfg.Output.Color
	}
	if !cmd.Flags().Changed("fail-on") {
		failOnFlag = cfg.Policy.FailOn
	}
	if !cmd.Flags().Changed("include-test") {
		includeTestFlag = cfg.Policy.IncludeTestCode
	}

	failOn, err := types.ParseSeverity(failOnFlag)
	if err != nil {
		return fmt.Errorf("invalid --fail-on value: %w", err)
	}

	logger := newLogger()

	s := scanner.New(rules.DefaultRegistry,
		scanner.WithFilter(pathfilter.New(cfg.Paths.Include, cfg.Paths.Exclude)),
		scanner.WithIncludeTestCode(includeTestFlag),
		scanner.WithLogger(logger),
	)
	for _, rule := range rules.DefaultRegistry.All() {
		s.SetRuleConfig(rule.ID(), &rules.RuleConfig{
			Enabled:  cfg.IsRuleEnabled(rule.ID()),
			Severity: cfg.GetRuleSeverity(rule.ID(), rule.DefaultSeverity()),
		})
	}

	scanResult, err := s.Scan(targetDir)
	if err != nil {
		return err
	}

	prioritizer := priority.NewDefault()
	report := output.NewReport(versionStr, scanResult.TargetDir, scanResult)
	report.FailOn = failOn
	report.Prioritized = prioritizer.Prioritize(scanResult)

	if fixFlag {
		policy, err := policyFromConfig(cfg.Fix)
		if err != nil {
			return err
		}
		fixer := fix.NewFixer(prioritizer,
			fix.WithPolicy(policy),
			fix.WithBackupSuffix(cfg.Fix.BackupSuffix),
			fix.WithRequireBackup(cfg.Fix.RequireBackup),
			fix.WithLogger(logger),
		)
		report.Fix = fixer.Fix(scanResult)

		verifier := verify.New(s,
			verify.WithBackupSuffix(cfg.Fix.BackupSuffix),
			verify.WithCleanupBackups(cfg.Fix.CleanupBackups),
			verify.WithLogger(logger),
		)
		report.Verification, err = verifier.Verify(scanResult.TargetDir, scanResult, report.Fix)
		if err != nil {
			return err
		}
	}

	report.Compute()

	var writer *os.File
	if outputFlag != "" {
		f, err := os.Create(outputFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	} else {
		writer = os.Stdout
	}

	if !quietFlag || report.Result == "FAIL" {
		renderer := output.NewRenderer(output.Format(formatFlag), shouldUseColor(writer))
		if err := renderer.Render(writer, report); err != nil {
			return fmt.Errorf("failed to render output: %w", err)
		}
	}

	if report.Result == "FAIL" {
		os.Exit(1)
	}
	return nil
}

// policyFromConfig translates the per-tier mode strings into a fix policy
func policyFromConfig(cfg *config.FixConfig) (*fix.Policy, error) {
	policy := fix.DefaultPolicy()
	for tier, raw := range map[priority.Tier]string{
		priority.TierCritical:  cfg.Critical,
		priority.TierImportant: cfg.Important,
		priority.TierCleanup:   cfg.Cleanup,
	} {
		mode, err := fix.ParseMode(raw)
		if err != nil {
			return nil, fmt.Errorf("fix mode for %s tier: %w", tier, err)
		}
		policy.SetMode(tier, mode)
	}
	return policy, nil
}

func newLogger() hclog.Logger {
	level := hclog.Warn
	if verboseFlag {
		level = hclog.Debug
	} else if quietFlag {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "apexfix",
		Level:  level,
		Output: os.Stderr,
	})
}

func shouldUseColor(f *os.File) bool {
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}
