// Package domain contains the core domain models for target resolution and
// parallel build dispatch.
package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Target identifies one buildable flake output as a dotted attribute path,
// e.g. "packages.x86_64-linux.doc". It has no internal structure beyond the
// string.
type Target string

// String returns the dotted attribute path.
func (t Target) String() string {
	return string(t)
}

// Filter selects a subset of the output graph by matching dotted paths
// against a compiled regular expression.
type Filter struct {
	pattern string
	re      *regexp.Regexp
}

// NewFilter compiles the given pattern into a Filter.
func NewFilter(pattern string) (Filter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Filter{}, zerr.With(zerr.Wrap(err, ErrInvalidFilter.Error()), "pattern", pattern)
	}
	return Filter{pattern: pattern, re: re}, nil
}

// Pattern returns the original pattern string.
func (f Filter) Pattern() string {
	return f.pattern
}

// Matches reports whether the target's dotted path matches the filter.
func (f Filter) Matches(t Target) bool {
	return f.re.MatchString(string(t))
}

// Selection is the user's choice of what to build: either an explicit list
// of targets or a filter over the output graph. Exactly one must be set.
type Selection struct {
	Targets []Target
	Filter  *Filter
}

// NewExplicitSelection parses a whitespace-separated target specification
// into a Selection. An empty specification is an error.
func NewExplicitSelection(spec string) (Selection, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return Selection{}, ErrNoSelection
	}
	targets := make([]Target, len(fields))
	for i, f := range fields {
		targets[i] = Target(f)
	}
	return Selection{Targets: targets}, nil
}

// NewFilterSelection wraps a compiled filter in a Selection.
func NewFilterSelection(f Filter) Selection {
	return Selection{Filter: &f}
}

// Validate checks that exactly one selection mode is set.
func (s Selection) Validate() error {
	if len(s.Targets) > 0 && s.Filter != nil {
		return ErrConflictingSelection
	}
	if len(s.Targets) == 0 && s.Filter == nil {
		return ErrNoSelection
	}
	return nil
}

// NewTargetSetFromFilter keeps the outputs matching the filter, sorted and
// deduplicated. Zero matches is an error so that an over-narrow filter is
// never silently treated as "nothing to build".
func NewTargetSetFromFilter(outputs []Target, f Filter) ([]Target, error) {
	var matched []Target
	for _, out := range outputs {
		if f.Matches(out) {
			matched = append(matched, out)
		}
	}
	if len(matched) == 0 {
		return nil, zerr.With(ErrNoTargetsMatched, "pattern", f.Pattern())
	}
	slices.Sort(matched)
	return slices.Compact(matched), nil
}
