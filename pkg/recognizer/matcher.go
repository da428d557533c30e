package recognizer

import "sort"

// Matcher runs a compiled automaton as a generic byte automaton that
// accepts exactly the vocabulary words. Its method set matches
// vellum.Automaton, so it can drive FST searches.
//
// State 0 is dead. Dispatch state id maps to id+1; prefix-match positions
// follow, one span of len(candidate)+1 states per candidate word.
type Matcher struct {
	a     *Automaton
	spans []matchSpan // ascending base
	base  map[string]int
	limit int
}

type matchSpan struct {
	base      int
	candidate string
}

// Matcher returns a Matcher over a.
func (a *Automaton) Matcher() *Matcher {
	m := &Matcher{a: a, base: make(map[string]int)}
	next := 1 + len(a.states)
	for id := range a.states {
		for _, t := range a.states[id].targets {
			if t.kind != KindPrefixMatch {
				continue
			}
			if _, ok := m.base[t.candidate]; ok {
				continue
			}
			m.base[t.candidate] = next
			m.spans = append(m.spans, matchSpan{base: next, candidate: t.candidate})
			next += len(t.candidate) + 1
		}
	}
	m.limit = next
	return m
}

// Start returns the root state.
func (m *Matcher) Start() int {
	return 1
}

// IsMatch reports whether the bytes leading to s form a vocabulary word.
func (m *Matcher) IsMatch(s int) bool {
	if id, ok := m.dispatch(s); ok {
		return m.a.states[id].known
	}
	cand, pos, ok := m.prefix(s)
	return ok && m.a.prefixToken(cand, pos).Known
}

// CanMatch reports whether a word is reachable from s.
func (m *Matcher) CanMatch(s int) bool {
	return s > 0 && s < m.limit
}

// WillAlwaysMatch is always false: every word is finite.
func (m *Matcher) WillAlwaysMatch(int) bool {
	return false
}

// Accept returns the state reached from s on b.
func (m *Matcher) Accept(s int, b byte) int {
	if id, ok := m.dispatch(s); ok {
		if b == Delimiter {
			return 0
		}
		t := m.a.states[id].next(b)
		switch {
		case t == nil:
			return 0
		case t.kind == KindDispatch:
			return t.id + 1
		default:
			return m.base[t.candidate] + t.matched
		}
	}
	cand, pos, ok := m.prefix(s)
	if !ok || pos >= len(cand) || cand[pos] != b {
		return 0
	}
	return s + 1
}

func (m *Matcher) dispatch(s int) (int, bool) {
	if s < 1 || s > len(m.a.states) {
		return 0, false
	}
	return s - 1, true
}

func (m *Matcher) prefix(s int) (string, int, bool) {
	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].base > s }) - 1
	if i < 0 || s >= m.limit {
		return "", 0, false
	}
	sp := m.spans[i]
	return sp.candidate, s - sp.base, true
}
