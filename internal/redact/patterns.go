package redact

import "regexp"

// Pattern is a named expression whose matches are masked.
type Pattern struct {
	Name  string
	Kind  string // placeholder prefix, e.g. [IPV4:a3f2]
	Regex *regexp.Regexp
}

var builtIn = map[string]Pattern{
	"ipv4": {
		Name:  "ipv4",
		Kind:  "IPV4",
		Regex: regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`),
	},
	"ipv6": {
		Name:  "ipv6",
		Kind:  "IPV6",
		Regex: regexp.MustCompile(`\b(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}\b|\b(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}\b`),
	},
	"email": {
		Name:  "email",
		Kind:  "EMAIL",
		Regex: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	},
	"api_key": {
		Name:  "api_key",
		Kind:  "SECRET",
		Regex: regexp.MustCompile(`(?i)(?:api[_-]?key|token|secret|password|passwd|pwd)["\s]*[:=]["\s]*[a-zA-Z0-9_\-]{8,}`),
	},
	"aws_key": {
		Name:  "aws_key",
		Kind:  "AWS_KEY",
		Regex: regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	},
	"jwt": {
		Name:  "jwt",
		Kind:  "JWT",
		Regex: regexp.MustCompile(`\beyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`),
	},
	"uuid": {
		Name:  "uuid",
		Kind:  "UUID",
		Regex: regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`),
	},
}

// DefaultPatterns is the set applied when no names are configured. UUIDs
// are left out; they are rarely sensitive and often the interesting word.
func DefaultPatterns() []string {
	return []string{"ipv4", "ipv6", "email", "api_key", "aws_key", "jwt"}
}

// lookup returns the patterns for names in order, skipping unknown names.
func lookup(names []string) []Pattern {
	out := make([]Pattern, 0, len(names))
	for _, name := range names {
		if p, ok := builtIn[name]; ok {
			out = append(out, p)
		}
	}
	return out
}
