package config

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Version: 1,
		Paths: &PathsConfig{
			Include: []string{"**/*.cls", "**/*.trigger"},
			Exclude: []string{},
		},
		Output: &OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Policy: &PolicyConfig{
			FailOn:          "High",
			IncludeTestCode: false,
		},
		Fix: &FixConfig{
			Critical:       "conditional",
			Important:      "never",
			Cleanup:        "always",
			CleanupBackups: false,
			RequireBackup:  false,
			BackupSuffix:   ".backup",
		},
		Rules: []*RuleConfig{},
	}
}
