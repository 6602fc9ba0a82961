// Package cli wires the command-line interface to the scan/fix/verify
// pipeline.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "apexfix",
	Short: "Apex code quality scanner and fixer",
	Long: `apexfix scans Salesforce Apex source for security and code quality
violations, groups them into priority tiers, and can automatically fix the
violations that are safe to fix.

Fixed files are verified by a follow-up scan; a fix that introduces new
violations is rolled back from its backup.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
