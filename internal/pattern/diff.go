package pattern

import "strings"

// wordSep splits lines into words. Only single spaces separate words, so
// repeated spaces produce empty words that take part in the comparison.
const wordSep = " "

// Diff compares two normalized lines word by word. It returns the position
// of the only differing word and true, or -1 and false when the lines have
// a different word count, are identical, or differ in more than one place.
func Diff(a, b string) (int, bool) {
	return diffWords(split(a), split(b))
}

func split(s string) []string {
	return strings.Split(s, wordSep)
}

func diffWords(a, b []string) (int, bool) {
	if len(a) != len(b) {
		return -1, false
	}

	index := -1
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if index >= 0 {
			return -1, false
		}
		index = i
	}

	return index, index >= 0
}
