// Package normalize turns raw log lines into their comparable form by
// stripping a recognized timestamp prefix.
//
// The original line is never modified; callers keep it for reporting and
// only compare the normalized form.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix matches "DD-MM-YYYY HH:MM:SS " at the start of a line.
// Only the shape is checked, not whether the date exists.
const DefaultPrefix = `^\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2} `

var defaultPrefixRegex = regexp.MustCompile(DefaultPrefix)

// Normalizer strips the first matching prefix from a line.
type Normalizer struct {
	prefixes []*regexp.Regexp
}

// Default returns a Normalizer that recognizes DefaultPrefix only.
func Default() *Normalizer {
	return &Normalizer{prefixes: []*regexp.Regexp{defaultPrefixRegex}}
}

// New builds a Normalizer from DefaultPrefix followed by the given
// expressions. Expressions that are not anchored with "^" are anchored
// automatically so a prefix can never match in the middle of a line.
func New(patterns ...string) (*Normalizer, error) {
	n := Default()
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if !strings.HasPrefix(p, "^") {
			p = "^(?:" + p + ")"
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp prefix %q: %w", p, err)
		}
		n.prefixes = append(n.prefixes, re)
	}
	return n, nil
}

// Normalize returns line without its timestamp prefix, or line unchanged
// when no prefix matches.
func (n *Normalizer) Normalize(line string) string {
	for _, re := range n.prefixes {
		if loc := re.FindStringIndex(line); loc != nil && loc[0] == 0 {
			return line[loc[1]:]
		}
	}
	return line
}

// Prefixes returns the source of every recognized prefix expression.
func (n *Normalizer) Prefixes() []string {
	out := make([]string, len(n.prefixes))
	for i, re := range n.prefixes {
		out[i] = re.String()
	}
	return out
}
