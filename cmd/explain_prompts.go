package cmd

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/onediff/internal/pattern"
	"github.com/bimmerbailey/onediff/internal/redact"
)

// maxPromptSamples caps the example lines sent for one group.
const maxPromptSamples = 5

// wildcard marks the variable position in a template.
const wildcard = "<*>"

// buildExplainSystemPrompt creates the system prompt for the explain command.
func buildExplainSystemPrompt() string {
	return `You are a log analysis assistant. You are given a log line template in
which exactly one word varies, marked <*>, together with the values observed
at that position.

Answer in one sentence: what does the varying word represent, and what does
the set of observed values suggest? Do not repeat the template. Never invent
values that are not listed.`
}

// buildExplainUserPrompt describes one group for the model. A nil
// redactor sends lines as they are.
func buildExplainUserPrompt(g pattern.Group, r *redact.Redactor) string {
	var sb strings.Builder

	sb.WriteString("Template: ")
	sb.WriteString(r.String(templateOf(g)))
	sb.WriteString("\n")

	words := r.Strings(g.Words)
	sb.WriteString(fmt.Sprintf("Observed values (%d): %s\n", len(words), strings.Join(words, ", ")))

	sb.WriteString("Sample lines:\n")
	for i, s := range g.Sentences {
		if i == maxPromptSamples {
			sb.WriteString(fmt.Sprintf("- ... %d more\n", len(g.Sentences)-maxPromptSamples))
			break
		}
		sb.WriteString("- ")
		sb.WriteString(r.String(s))
		sb.WriteString("\n")
	}

	return sb.String()
}

// templateOf returns the group's pattern with the variable word replaced by
// a wildcard.
func templateOf(g pattern.Group) string {
	if g.DiffIndex < 0 {
		return g.Pattern
	}
	words := strings.Split(g.Pattern, " ")
	if g.DiffIndex >= len(words) {
		return g.Pattern
	}
	words[g.DiffIndex] = wildcard
	return strings.Join(words, " ")
}
