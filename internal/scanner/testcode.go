package scanner

import (
	"path/filepath"
	"regexp"
	"strings"
)

var isTestMarkerRe = regexp.MustCompile(`(?i)@IsTest\b`)

// IsTestFile classifies a file as test code, either by filename convention
// or by an in-file @IsTest marker annotation
func IsTestFile(path, content string) bool {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, "test") || strings.HasSuffix(lower, "_test") || strings.HasPrefix(lower, "test") {
		return true
	}

	return isTestMarkerRe.MatchString(content)
}
