package relevance

import (
	"fmt"
	"regexp"
	"strings"

	"NewsSentinel/internal/ports"
)

// Filter matches candidate text against a fixed set of word-boundary
// patterns. Any single pattern matching makes the text relevant; there is no
// weighting and no AND-logic across topic clusters. The rule set is immutable
// after construction.
type Filter struct {
	patterns []*regexp.Regexp
}

var _ ports.RelevanceFilter = (*Filter)(nil)

// New compiles the given pattern list. A malformed pattern is a configuration
// error and fails construction.
func New(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile relevance pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return &Filter{patterns: compiled}, nil
}

// IsRelevant reports whether any pattern matches the lowercased text.
// Empty text is never relevant.
func (f *Filter) IsRelevant(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return false
	}

	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
