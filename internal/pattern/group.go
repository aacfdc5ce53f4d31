package pattern

// Group is one discovered pattern together with the lines assigned to it.
type Group struct {
	// Pattern is the normalized form of the line that created the group.
	Pattern string `json:"pattern"`

	// Sentences holds the original lines, timestamps included, in the
	// order they were assigned.
	Sentences []string `json:"sentences"`

	// Words holds the variable words in order of first occurrence. The
	// pattern's own word comes first, followed by one word per matching
	// line.
	Words []string `json:"words"`

	// DiffIndex is the word position of the first non-trivial match, or -1
	// while the group has none.
	DiffIndex int `json:"diff_index"`

	tokens []string            // words of Pattern
	seen   map[string]struct{} // normalized forms of Sentences
}

func newGroup(normalized, line string) *Group {
	return &Group{
		Pattern:   normalized,
		Sentences: []string{line},
		Words:     []string{},
		DiffIndex: -1,
		tokens:    split(normalized),
		seen:      map[string]struct{}{normalized: {}},
	}
}

// Len returns the number of lines assigned to the group.
func (g *Group) Len() int {
	return len(g.Sentences)
}

// IsPattern reports whether the group holds more than a single unique line.
func (g *Group) IsPattern() bool {
	return len(g.Sentences) > 1 || len(g.Words) > 0
}

// contains reports whether normalized is already represented in the group.
func (g *Group) contains(normalized string) bool {
	_, ok := g.seen[normalized]
	return ok
}

// add records a non-trivial match at diff position index.
func (g *Group) add(line, normalized string, index int, lineWord string) {
	if len(g.Words) == 0 {
		g.Words = append(g.Words, g.tokens[index])
		g.DiffIndex = index
	}
	g.Words = append(g.Words, lineWord)
	g.Sentences = append(g.Sentences, line)
	g.seen[normalized] = struct{}{}
}

// clone returns a deep copy without the internal index.
func (g *Group) clone() Group {
	return Group{
		Pattern:   g.Pattern,
		Sentences: append([]string(nil), g.Sentences...),
		Words:     append([]string{}, g.Words...),
		DiffIndex: g.DiffIndex,
	}
}
