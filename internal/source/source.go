// Package source reads raw lines from files or readers.
//
// Sequences are lazy: nothing is opened until iteration starts, and every
// file is closed when iteration ends, including when the consumer stops
// early.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// MaxLineSize is the longest line a source can yield.
const MaxLineSize = 1024 * 1024 // 1MB

// ErrNoPaths is yielded by Lines when it is called without any path.
var ErrNoPaths = errors.New("source: no input paths")

// Lines returns a sequence over every line of the given files, read one
// after another. An open or read error is yielded once and ends the
// sequence.
func Lines(paths ...string) iter.Seq2[string, error] {
	if len(paths) == 0 {
		return func(yield func(string, error) bool) {
			yield("", ErrNoPaths)
		}
	}

	return func(yield func(string, error) bool) {
		for _, path := range paths {
			if !readFile(path, yield) {
				return
			}
		}
	}
}

// readFile yields the lines of one file and reports whether iteration
// should continue with the next file.
func readFile(path string, yield func(string, error) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		yield("", fmt.Errorf("open %s: %w", path, err))
		return false
	}
	defer f.Close()

	return scan(f, path, yield)
}

// Read returns a sequence over every line of r.
func Read(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scan(r, "input", yield)
	}
}

func scan(r io.Reader, name string, yield func(string, error) bool) bool {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, MaxLineSize)

	for scanner.Scan() {
		if !yield(scanner.Text(), nil) {
			return false
		}
	}

	if err := scanner.Err(); err != nil {
		yield("", fmt.Errorf("read %s: %w", name, err))
		return false
	}

	return true
}
