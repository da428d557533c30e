package recognizer

import (
	"bytes"
	"fmt"
)

// Scan consumes buf, advancing c and passing every completed token to h.
// It returns the number of bytes consumed, which is len(buf) unless h asked
// to stop. After a stop the cursor is at the root state, so scanning
// buf[n:] later continues exactly where the stop happened.
//
// Bytes of an unfinished token are carried in c; splitting a stream into any
// sequence of Scan calls yields the same tokens as a single call.
func (a *Automaton) Scan(buf []byte, c *Cursor, h Handler) (int, error) {
	if err := a.check(c); err != nil {
		return 0, err
	}

	n := len(buf)
	i := 0
	for i < n {
		switch c.State {
		case NoState:
			j := bytes.IndexByte(buf[i:], Delimiter)
			if j < 0 {
				c.Accumulator = append(c.Accumulator, buf[i:]...)
				return n, nil
			}
			c.Accumulator = append(c.Accumulator, buf[i:i+j]...)
			i += j + 1
			tok := Token{Text: string(c.Accumulator)}
			c.Reset()
			if !h(tok) {
				return i, nil
			}

		case PrefixMatch:
			cand, p := c.Candidate, c.Position
			for i < n && p < len(cand) && buf[i] == cand[p] {
				p++
				i++
			}
			c.Position = p
			if i == n {
				return n, nil
			}
			b := buf[i]
			i++
			if b != Delimiter {
				c.accumulate(cand[:p], b)
				continue
			}
			tok := a.prefixToken(cand, p)
			c.Reset()
			if !h(tok) {
				return i, nil
			}

		default:
			s := &a.states[c.State]
			b := buf[i]
			i++
			if b == Delimiter {
				c.State = 0
				if s.prefix != "" && !h(Token{Text: s.prefix, Known: s.known}) {
					return i, nil
				}
				continue
			}
			t := s.next(b)
			switch {
			case t == nil:
				c.accumulate(s.prefix, b)
			case t.kind == KindDispatch:
				c.State = t.id
			default:
				c.State = PrefixMatch
				c.Candidate = t.candidate
				c.Position = t.matched
			}
		}
	}
	return n, nil
}

// Feed consumes a single byte. It behaves exactly like Scan on a one-byte
// buffer.
func (a *Automaton) Feed(b byte, c *Cursor, h Handler) error {
	one := [1]byte{b}
	_, err := a.Scan(one[:], c, h)
	return err
}

// Finish flushes the unfinished token held by c, if any, and resets c to
// the root state. It is what a trailing delimiter would do and is meant to
// be called when the stream closes.
func (a *Automaton) Finish(c *Cursor, h Handler) error {
	return a.Feed(Delimiter, c, h)
}

// Tokens scans data as a complete stream and returns every token,
// including a trailing one without a delimiter.
func (a *Automaton) Tokens(data []byte) []Token {
	var out []Token
	collect := func(tok Token) bool {
		out = append(out, tok)
		return true
	}
	var c Cursor
	// A fresh cursor is always valid, so neither call can fail.
	_, _ = a.Scan(data, &c, collect)
	_ = a.Finish(&c, collect)
	return out
}

// check validates a cursor against the automaton and re-interns a
// prefix-match candidate that came from outside, e.g. UnmarshalBinary.
func (a *Automaton) check(c *Cursor) error {
	switch {
	case c.State >= 0:
		if c.State >= len(a.states) {
			return fmt.Errorf("%w: state %d outside [0,%d)", ErrCorruptCursor, c.State, len(a.states))
		}
	case c.State == NoState:
	case c.State == PrefixMatch:
		w, ok := a.words[c.Candidate]
		if !ok {
			return fmt.Errorf("%w: candidate %q is not a vocabulary word", ErrCorruptCursor, c.Candidate)
		}
		if c.Position < 1 || c.Position > len(w) {
			return fmt.Errorf("%w: position %d outside candidate %q", ErrCorruptCursor, c.Position, w)
		}
		c.Candidate = w
	default:
		return fmt.Errorf("%w: unknown state %d", ErrCorruptCursor, c.State)
	}
	return nil
}
