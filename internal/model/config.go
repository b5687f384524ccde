package model

import "regexp"

// Config carries the options recognized by the resolution pipeline.
type Config struct {
	// Verbose emits non-fatal diagnostic messages.
	Verbose bool
	// IgnoreTests excludes the project's own tests directory.
	IgnoreTests bool
	// Exclude holds caller-defined exclusion patterns.
	Exclude []*regexp.Regexp
}

// ExcludePath reports whether the path matches any exclusion pattern.
func (c Config) ExcludePath(path Path) bool {
	for _, re := range c.Exclude {
		if re.MatchString(string(path)) {
			return true
		}
	}

	return false
}
