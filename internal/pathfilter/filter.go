// Package pathfilter provides glob-based file filtering using doublestar patterns.
package pathfilter

import (
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"
)

// DefaultInclude matches the Apex source files the scanner cares about
var DefaultInclude = []string{"**/*.cls", "**/*.trigger"}

// Filter holds the include and exclude patterns for file filtering
type Filter struct {
	include []string
	exclude []string
}

// New creates a new Filter with the given include and exclude patterns
func New(include, exclude []string) *Filter {
	if len(include) == 0 {
		include = DefaultInclude
	}
	return &Filter{
		include: include,
		exclude: exclude,
	}
}

// Default returns a Filter with the default Apex patterns and no exclusions
func Default() *Filter {
	return New(nil, nil)
}

// MatchFile checks if a single relative file path matches the filter criteria
func (f *Filter) MatchFile(path string) (bool, error) {
	included := false
	for _, pattern := range f.include {
		match, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if match {
			included = true
			break
		}
	}
	if !included {
		return false, nil
	}

	for _, pattern := range f.exclude {
		match, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, err
		}
		if match {
			return false, nil
		}
	}

	return true, nil
}

// Walk returns the absolute paths of all matching files under dir.
// Directories that cannot be read are logged and skipped, not fatal.
func (f *Filter) Walk(dir string, logger hclog.Logger) ([]string, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var result []string
	walkErr := filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(absDir, path)
		if err != nil {
			return err
		}
		match, err := f.MatchFile(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if match {
			result = append(result, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return result, nil
}
