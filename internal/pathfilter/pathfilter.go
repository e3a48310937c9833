// Package pathfilter decides which filenames are junk and which directories
// are pruned during traversal.
package pathfilter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// ErrInvalidPattern is matched by every pattern compilation failure.
var ErrInvalidPattern = errors.New("invalid pattern")

// InvalidPatternError reports a glob that failed to compile.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return "invalid pattern " + strconv.Quote(e.Pattern) + ": " + e.Err.Error()
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidPattern.
func (e *InvalidPatternError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// PathFilter matches bare filenames against a compiled set of globs.
type PathFilter struct {
	patterns []string
	globs    []glob.Glob
}

// New compiles patterns. No separators are registered, so '*' and '?' are
// evaluated against the whole filename. Outside a '[...]' class only '*',
// '?' and '[' are special; every other character matches itself.
func New(patterns []string) (*PathFilter, error) {
	pf := &PathFilter{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}

	for _, pattern := range patterns {
		g, err := glob.Compile(escapeLiterals(pattern))
		if err != nil {
			return nil, &InvalidPatternError{Pattern: pattern, Err: err}
		}
		pf.patterns = append(pf.patterns, pattern)
		pf.globs = append(pf.globs, g)
	}

	return pf, nil
}

// Matches reports whether name matches any compiled pattern.
// Names that are not valid UTF-8 never match.
func (pf *PathFilter) Matches(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}

	for _, g := range pf.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns in compilation order.
func (pf *PathFilter) Patterns() []string {
	out := make([]string, len(pf.patterns))
	copy(out, pf.patterns)
	return out
}

// escapeLiterals escapes the characters gobwas/glob would read as
// alternation or escapes, leaving class contents untouched.
func escapeLiterals(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	inClass := false
	for _, r := range pattern {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '\\', r == '{', r == '}', r == ',':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
