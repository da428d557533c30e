package recognizer

import "fmt"

// Compile builds the automaton recognizing words. Duplicate words collapse;
// an empty vocabulary yields an automaton that reports every token as unknown.
func Compile(words []string) (*Automaton, error) {
	root, err := buildTrie(words)
	if err != nil {
		return nil, err
	}

	a := &Automaton{
		words:     make(map[string]string, len(words)),
		trieNodes: root.count(),
	}
	for _, w := range words {
		if _, ok := a.words[w]; !ok {
			a.words[w] = w
		}
	}
	a.sorted = sortedWords(a.words)

	// nodes[id] is the trie node behind dispatch state id. Ids are handed
	// out breadth-first in ascending byte order, the root first.
	nodes := []*trieNode{root}
	for id := 0; id < len(nodes); id++ {
		n := nodes[id]
		s := dispatchState{prefix: n.soFar, known: n.terminal}
		if n.terminal {
			s.prefix = a.words[n.soFar]
		}

		for _, b := range n.sortedKeys() {
			child := n.children[b]
			if word, ok := child.collapse(); ok {
				interned, found := a.words[word]
				if !found {
					return nil, fmt.Errorf("%w: chain below %q ends in non-word %q", ErrCompilerDefect, child.soFar, word)
				}
				s.targets = append(s.targets, target{
					kind:      KindPrefixMatch,
					candidate: interned,
					matched:   len(child.soFar),
				})
				a.prefixes++
			} else {
				s.targets = append(s.targets, target{kind: KindDispatch, id: len(nodes)})
				nodes = append(nodes, child)
			}
			s.keys = append(s.keys, b)
		}

		selectStrategy(&s)
		a.states = append(a.states, s)
	}

	if err := a.verify(); err != nil {
		return nil, err
	}
	return a, nil
}

// MustCompile is like Compile but panics on error.
// It simplifies initialization of package-level automata.
func MustCompile(words []string) *Automaton {
	a, err := Compile(words)
	if err != nil {
		panic(err)
	}
	return a
}

func selectStrategy(s *dispatchState) {
	if len(s.keys) <= tableThreshold {
		s.strategy = StrategyLinear
		return
	}
	s.strategy = StrategyTable
	s.table = new([256]uint8)
	for i, b := range s.keys {
		s.table[b] = uint8(i + 1)
	}
}

// verify checks the invariants the scanner relies on: ids are dense with the
// root at 0, every non-root state has exactly one incoming branch, and
// prefix-match targets stay within their candidate.
func (a *Automaton) verify() error {
	if len(a.states) == 0 || a.states[0].prefix != "" {
		return fmt.Errorf("%w: missing root state", ErrCompilerDefect)
	}

	incoming := make([]int, len(a.states))
	for id := range a.states {
		s := &a.states[id]
		if len(s.keys) != len(s.targets) {
			return fmt.Errorf("%w: state %d has %d keys for %d targets", ErrCompilerDefect, id, len(s.keys), len(s.targets))
		}
		for i, b := range s.keys {
			if b == Delimiter || (i > 0 && s.keys[i-1] >= b) {
				return fmt.Errorf("%w: state %d has invalid branch %q", ErrCompilerDefect, id, b)
			}
			if s.next(b) != &s.targets[i] {
				return fmt.Errorf("%w: state %d dispatches %q to the wrong branch", ErrCompilerDefect, id, b)
			}

			t := s.targets[i]
			switch t.kind {
			case KindDispatch:
				if t.id <= 0 || t.id >= len(a.states) {
					return fmt.Errorf("%w: state %d branches to id %d outside [1,%d)", ErrCompilerDefect, id, t.id, len(a.states))
				}
				incoming[t.id]++
			case KindPrefixMatch:
				if t.matched < 1 || t.matched > len(t.candidate) {
					return fmt.Errorf("%w: state %d matches %q at %d", ErrCompilerDefect, id, t.candidate, t.matched)
				}
			}
		}
	}

	for id := 1; id < len(incoming); id++ {
		if incoming[id] != 1 {
			return fmt.Errorf("%w: state %d has %d incoming branches", ErrCompilerDefect, id, incoming[id])
		}
	}
	return nil
}
