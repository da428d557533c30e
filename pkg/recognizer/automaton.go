// Package recognizer compiles a fixed vocabulary of words into a byte-level
// automaton and scans chunked input against it, reporting every
// space-delimited token either as one of the vocabulary words or as an
// unknown token.
//
// An Automaton is immutable once compiled and may be shared by any number of
// goroutines. All mutable scan state lives in a Cursor, which belongs to a
// single stream and must not be used concurrently.
package recognizer

import (
	"fmt"
	"io"
	"sort"
)

// Delimiter is the byte that terminates every token. It is a protocol
// constant and not configurable.
const Delimiter byte = ' '

// Cursor state sentinels. Non-negative states are dispatch state ids.
const (
	NoState     = -1 // free accumulation of an unknown token
	PrefixMatch = -2 // literal comparison against a single candidate word
)

// tableThreshold is the number of distinct outgoing bytes above which a
// dispatch state branches through a 256-entry table instead of a linear
// comparison chain.
const tableThreshold = 4

// Token is a completed token delivered to a Handler.
type Token struct {
	Text  string
	Known bool // Text is exactly one vocabulary word
}

// Handler receives each completed token. Returning false stops the scan
// after the current token.
type Handler func(tok Token) bool

// Kind identifies the kind of a compiled state.
type Kind uint8

const (
	KindDispatch Kind = iota
	KindPrefixMatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDispatch:
		return "dispatch"
	case KindPrefixMatch:
		return "prefix-match"
	default:
		return "unknown"
	}
}

// Strategy is the branch lookup used by a dispatch state.
type Strategy uint8

const (
	StrategyLinear Strategy = iota
	StrategyTable
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyLinear:
		return "linear"
	case StrategyTable:
		return "table"
	default:
		return "unknown"
	}
}

// target is the successor reached through one branch of a dispatch state.
type target struct {
	kind      Kind
	id        int    // dispatch id, KindDispatch only
	candidate string // sole reachable word, KindPrefixMatch only
	matched   int    // bytes of candidate already confirmed
}

type dispatchState struct {
	prefix   string // emitted on delimiter; empty only at the root
	known    bool
	strategy Strategy
	keys     []byte // ascending; parallel to targets
	targets  []target
	table    *[256]uint8 // index+1 into targets, StrategyTable only
}

// next returns the branch taken on b, or nil when there is none.
func (s *dispatchState) next(b byte) *target {
	if s.table != nil {
		if i := s.table[b]; i != 0 {
			return &s.targets[i-1]
		}
		return nil
	}
	for i, k := range s.keys {
		if k == b {
			return &s.targets[i]
		}
	}
	return nil
}

// Automaton is a compiled vocabulary recognizer.
type Automaton struct {
	states    []dispatchState   // indexed by dense id, root at 0
	words     map[string]string // vocabulary, values are the interned words
	sorted    []string
	prefixes  int // prefix-match states reachable from dispatch states
	trieNodes int
}

// NumStates returns the number of dispatch states.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// Contains reports whether word is in the vocabulary.
func (a *Automaton) Contains(word string) bool {
	_, ok := a.words[word]
	return ok
}

// Lookup returns the interned vocabulary word equal to b.
func (a *Automaton) Lookup(b []byte) (string, bool) {
	w, ok := a.words[string(b)]
	return w, ok
}

// Words returns the vocabulary in ascending byte order.
func (a *Automaton) Words() []string {
	out := make([]string, len(a.sorted))
	copy(out, a.sorted)
	return out
}

// Stats summarizes the shape of a compiled automaton.
type Stats struct {
	Words          int
	TrieNodes      int
	DispatchStates int
	PrefixStates   int
	TableStates    int
	LinearStates   int
}

// Stats returns counts describing the compiled automaton.
func (a *Automaton) Stats() Stats {
	st := Stats{
		Words:          len(a.sorted),
		TrieNodes:      a.trieNodes,
		DispatchStates: len(a.states),
		PrefixStates:   a.prefixes,
	}
	for i := range a.states {
		if a.states[i].strategy == StrategyTable {
			st.TableStates++
		} else {
			st.LinearStates++
		}
	}
	return st
}

// Describe writes a human-readable listing of every dispatch state.
func (a *Automaton) Describe(w io.Writer) error {
	for id := range a.states {
		s := &a.states[id]
		if _, err := fmt.Fprintf(w, "state %d %q %s known=%t\n", id, s.prefix, s.strategy, s.known); err != nil {
			return err
		}
		for i, b := range s.keys {
			t := s.targets[i]
			var err error
			if t.kind == KindDispatch {
				_, err = fmt.Fprintf(w, "  %q -> state %d\n", b, t.id)
			} else {
				_, err = fmt.Fprintf(w, "  %q -> match %q at %d\n", b, t.candidate, t.matched)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// prefixToken returns the token for the first pos bytes of candidate.
func (a *Automaton) prefixToken(candidate string, pos int) Token {
	if pos == len(candidate) {
		return Token{Text: candidate, Known: true}
	}
	if w, ok := a.words[candidate[:pos]]; ok {
		return Token{Text: w, Known: true}
	}
	return Token{Text: candidate[:pos]}
}

// sortedWords returns the keys of the vocabulary set in ascending order.
func sortedWords(words map[string]string) []string {
	out := make([]string, 0, len(words))
	for w := range words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
