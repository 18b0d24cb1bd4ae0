package logging

import (
	"regexp"
)

// Sanitizer redacts credentials from log output. The admin token is the
// main concern, but SMTP passwords and similar config values pass
// through log attributes too.
type Sanitizer struct {
	patterns []*regexp.Regexp
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultPatterns(),
		redacted: "[REDACTED]",
	}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// Authorization headers
		`(?i)bearer\s+[a-zA-Z0-9._=/+-]{12,}`,
		// Admin token in flags, env dumps or URLs
		`(?i)(admin[_-]?token|token)["'\s:=]+[a-zA-Z0-9._=/+-]{12,}`,
		// Generic secrets and passwords
		`(?i)(secret|password)["'\s:=]+[^\s"']{6,}`,
		// Basic-auth credentials embedded in URLs
		`://[^/\s:@]+:[^/\s@]+@`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Sanitize redacts credentials from a string.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, s.redacted)
	}
	return result
}

// AddPattern adds a custom pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}
