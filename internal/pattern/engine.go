package pattern

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/bimmerbailey/onediff/internal/normalize"
)

// ErrFinalized is returned by Process once Finalize has been called.
var ErrFinalized = errors.New("pattern: engine already finalized")

// Engine holds the groups discovered so far.
type Engine struct {
	normalizer *normalize.Normalizer
	logger     *slog.Logger
	groups     []*Group
	lines      int
	ignored    int
	finalized  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithNormalizer sets the normalizer used to build the comparable form of
// each line. Default is normalize.Default().
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.normalizer = n
		}
	}
}

// WithLogger sets the logger used for debug tracing. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		normalizer: normalize.Default(),
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Process assigns line to every group it matches, or to a new group when
// it matches none. Empty lines are ignored.
func (e *Engine) Process(line string) error {
	if e.finalized {
		return ErrFinalized
	}

	e.lines++
	if line == "" {
		e.ignored++
		return nil
	}

	normalized := e.normalizer.Normalize(line)
	tokens := split(normalized)

	matched := 0
	for _, g := range e.groups {
		if g.contains(normalized) {
			// Already represented; no new word, no duplicate sentence.
			matched++
			continue
		}

		index, ok := diffWords(g.tokens, tokens)
		if !ok {
			continue
		}

		matched++
		g.add(line, normalized, index, tokens[index])
		e.logger.Debug("line matched pattern",
			"pattern", g.Pattern,
			"index", index,
			"word", tokens[index])
	}

	if matched == 0 {
		e.groups = append(e.groups, newGroup(normalized, line))
		e.logger.Debug("created group", "id", len(e.groups), "pattern", normalized)
	}

	return nil
}

// ProcessAll processes every line yielded by seq. It stops at the first
// error produced by seq and returns it.
func (e *Engine) ProcessAll(seq iter.Seq2[string, error]) error {
	for line, err := range seq {
		if err != nil {
			return fmt.Errorf("reading lines: %w", err)
		}
		if err := e.Process(line); err != nil {
			return err
		}
	}
	return nil
}

// Groups returns the live groups in creation order. The pointers refer to
// the engine's own records, so later calls to Process are visible through
// them.
func (e *Engine) Groups() []*Group {
	out := make([]*Group, len(e.groups))
	copy(out, e.groups)
	return out
}

// Finalize freezes the engine and returns a copy of every group in
// creation order. It may be called more than once.
func (e *Engine) Finalize() []Group {
	if !e.finalized {
		e.finalized = true
		e.logger.Debug("finalized groups",
			"lines", e.lines,
			"ignored", e.ignored,
			"groups", len(e.groups))
	}

	out := make([]Group, len(e.groups))
	for i, g := range e.groups {
		out[i] = g.clone()
	}
	return out
}

// Stats summarizes what the engine has seen.
type Stats struct {
	Lines    int `json:"lines"`
	Ignored  int `json:"ignored"`
	Groups   int `json:"groups"`
	Patterns int `json:"patterns"`
}

// Stats returns line and group counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Lines:   e.lines,
		Ignored: e.ignored,
		Groups:  len(e.groups),
	}
	for _, g := range e.groups {
		if g.IsPattern() {
			s.Patterns++
		}
	}
	return s
}

// PatternsFound reports whether any group holds more than one line.
func PatternsFound(groups []Group) bool {
	for i := range groups {
		if groups[i].IsPattern() {
			return true
		}
	}
	return false
}
