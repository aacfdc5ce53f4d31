package output

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// highlightWords renders the words line with a bold label and yellow words.
func highlightWords(words []string) string {
	colored := make([]string, len(words))
	for i, w := range words {
		colored[i] = colorYellow + w + colorReset
	}
	return colorBold + WordsLabel + colorReset + strings.Join(colored, WordSeparator)
}

// dim greys out a line that matched nothing.
func dim(line string) string {
	return colorGray + line + colorReset
}
