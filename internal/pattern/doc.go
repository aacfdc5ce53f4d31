// Package pattern groups log lines that are identical except for a single
// word.
//
// Each Group is anchored on the normalized form of the first line that did
// not fit any existing group. Later lines join every group whose pattern
// differs from them in exactly one word position, and the words seen at
// that position are collected in order.
//
// Basic usage:
//
//	engine := pattern.New(
//	    pattern.WithNormalizer(normalize.Default()),
//	    pattern.WithLogger(logger),
//	)
//	if err := engine.ProcessAll(source.Lines(path)); err != nil {
//	    return err
//	}
//	groups := engine.Finalize()
//
// An Engine is not safe for concurrent use. Lines are processed one at a
// time, in arrival order.
package pattern
