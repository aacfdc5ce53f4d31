// Package output renders discovered pattern groups as text, JSON, or a
// table.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/bimmerbailey/onediff/internal/pattern"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// NoPatternsMessage is printed when no group holds more than one line.
const NoPatternsMessage = "No Patterns Found."

// WordsLabel prefixes the list of variable words of a group.
const WordsLabel = "The changing word was: "

// WordSeparator joins the variable words of a group.
const WordSeparator = ", "

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ReportOptions selects which groups are shown and how.
type ReportOptions struct {
	// MinSentences hides groups with fewer lines. Values below 1 act as 1.
	MinSentences int

	// Color controls ANSI highlighting in text output.
	Color ColorMode
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Report is the JSON document written for a finished run.
type Report struct {
	PatternsFound bool            `json:"patterns_found"`
	Groups        []pattern.Group `json:"groups"`
}

// WriteGroups outputs the finalized groups in the configured format.
func (wr *Writer) WriteGroups(groups []pattern.Group, opts ReportOptions) error {
	shown := visible(groups, opts.MinSentences)

	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(Report{
			PatternsFound: pattern.PatternsFound(groups),
			Groups:        shown,
		})
	case FormatTable:
		return wr.writeTable(groups, shown)
	default:
		return wr.writeText(groups, shown, shouldColorize(opts.Color, wr.w))
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// visible returns the groups with at least minSentences lines.
func visible(groups []pattern.Group, minSentences int) []pattern.Group {
	if minSentences < 1 {
		minSentences = 1
	}
	shown := make([]pattern.Group, 0, len(groups))
	for _, g := range groups {
		if g.Len() >= minSentences {
			shown = append(shown, g)
		}
	}
	return shown
}

// FormatWords renders the words line of a group.
func FormatWords(words []string) string {
	return WordsLabel + strings.Join(words, WordSeparator)
}

func (wr *Writer) writeText(all, shown []pattern.Group, colorize bool) error {
	if !pattern.PatternsFound(all) || len(shown) == 0 {
		_, err := fmt.Fprintln(wr.w, NoPatternsMessage)
		return err
	}

	for _, g := range shown {
		for _, s := range g.Sentences {
			line := s
			if colorize && !g.IsPattern() {
				line = dim(line)
			}
			if _, err := fmt.Fprintln(wr.w, line); err != nil {
				return err
			}
		}

		words := FormatWords(g.Words)
		if colorize {
			words = highlightWords(g.Words)
		}
		if _, err := fmt.Fprintf(wr.w, "%s\n\n", words); err != nil {
			return err
		}
	}

	return nil
}

// Column widths of the table view, in characters.
const (
	maxTableWords   = 40
	maxTablePattern = 80
)

func (wr *Writer) writeTable(all, shown []pattern.Group) error {
	if !pattern.PatternsFound(all) || len(shown) == 0 {
		_, err := fmt.Fprintln(wr.w, NoPatternsMessage)
		return err
	}

	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "#\tLINES\tWORDS\tPATTERN"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, "-\t-----\t-----\t-------"); err != nil {
		return err
	}

	for i, g := range shown {
		words := truncate(strings.Join(g.Words, ","), maxTableWords)
		p := truncate(g.Pattern, maxTablePattern)

		if _, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", i+1, g.Len(), words, p); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// truncate shortens s to at most n characters, ending in "..." when cut.
// It never splits a multi-byte character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
