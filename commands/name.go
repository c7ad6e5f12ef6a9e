package commands

import (
	"regexp"
	"strings"
)

// Name is a command name: either a literal token or a regular expression.
// Pattern names match free-form text but can never be published to the Bot
// API command menu.
type Name struct {
	literal string
	pattern *regexp.Regexp
}

// NewName creates a literal command name.
func NewName(literal string) Name {
	return Name{literal: literal}
}

// NewPattern creates a regular-expression command name.
func NewPattern(pattern *regexp.Regexp) Name {
	return Name{pattern: pattern}
}

// IsPattern reports whether the name is a regular expression.
func (n Name) IsPattern() bool {
	return n.pattern != nil
}

// Pattern returns the underlying regular expression, or nil for literals.
func (n Name) Pattern() *regexp.Regexp {
	return n.pattern
}

// String returns the literal name, or the pattern source for regex names.
func (n Name) String() string {
	if n.pattern != nil {
		return n.pattern.String()
	}
	return n.literal
}

// MatchesPattern reports whether value matches name. Literal names compare
// by equality, lowercasing both sides when ignoreCase is set. Pattern names
// are tested as-is; with ignoreCase an equivalent case-insensitive pattern
// is derived unless the pattern already carries the (?i) flag, which always
// takes precedence.
func MatchesPattern(value string, name Name, ignoreCase bool) bool {
	if name.pattern == nil {
		if ignoreCase {
			return strings.ToLower(value) == strings.ToLower(name.literal)
		}
		return value == name.literal
	}
	return patternFor(name, ignoreCase).MatchString(value)
}

// patternFor returns the pattern to match with, deriving a case-insensitive
// variant when asked for. The original pattern is never mutated.
func patternFor(name Name, ignoreCase bool) *regexp.Regexp {
	re := name.pattern
	if !ignoreCase || strings.Contains(re.String(), "(?i") {
		return re
	}
	derived, err := regexp.Compile("(?i)" + re.String())
	if err != nil {
		return re
	}
	return derived
}
