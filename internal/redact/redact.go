// Package redact masks sensitive values in log lines before they leave the
// process.
//
// Equal values map to equal placeholders, so a reader can still tell that
// the same address appears in several lines:
//
//	r := redact.New(nil)
//	r.String("login from 10.0.0.1") // "login from [IPV4:1f2a]"
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Redactor replaces matches of its patterns with stable placeholders.
// It is not safe for concurrent use.
type Redactor struct {
	patterns     []Pattern
	placeholders map[string]string
}

// New returns a Redactor for the named built-in patterns. Unknown names are
// ignored; when none remain the default set is used.
func New(names []string) *Redactor {
	patterns := lookup(names)
	if len(patterns) == 0 {
		patterns = lookup(DefaultPatterns())
	}
	return &Redactor{
		patterns:     patterns,
		placeholders: make(map[string]string),
	}
}

// String returns s with every sensitive value masked. A nil Redactor
// returns s unchanged.
func (r *Redactor) String(s string) string {
	if r == nil {
		return s
	}
	for _, p := range r.patterns {
		s = p.Regex.ReplaceAllStringFunc(s, func(match string) string {
			return r.placeholder(match, p.Kind)
		})
	}
	return s
}

// Strings masks each element of ss into a new slice.
func (r *Redactor) Strings(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = r.String(s)
	}
	return out
}

// Count returns how many distinct values have been masked so far.
func (r *Redactor) Count() int {
	if r == nil {
		return 0
	}
	return len(r.placeholders)
}

func (r *Redactor) placeholder(value, kind string) string {
	if p, ok := r.placeholders[value]; ok {
		return p
	}
	sum := sha256.Sum256([]byte(value))
	p := fmt.Sprintf("[%s:%s]", kind, hex.EncodeToString(sum[:2]))
	r.placeholders[value] = p
	return p
}
