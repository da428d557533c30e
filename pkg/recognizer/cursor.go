package recognizer

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor is the resumable scan position of one stream. The zero value is
// positioned at the root state. A Cursor is not safe for concurrent use.
//
// State selects which other fields are meaningful: a non-negative dispatch
// id uses none of them, PrefixMatch uses Candidate and Position, and
// NoState uses Accumulator.
type Cursor struct {
	State       int
	Candidate   string
	Position    int
	Accumulator []byte
}

// NewCursor returns a cursor at the root state.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Reset discards any unfinished token and returns to the root state.
// The accumulator's capacity is kept for reuse.
func (c *Cursor) Reset() {
	c.State = 0
	c.Candidate = ""
	c.Position = 0
	c.Accumulator = c.Accumulator[:0]
}

// Pending reports whether the cursor holds an unfinished token. It is false
// only at the root state.
func (c *Cursor) Pending() bool {
	return c.State != 0
}

// accumulate switches to free accumulation seeded with seed followed by b.
func (c *Cursor) accumulate(seed string, b byte) {
	c.State = NoState
	c.Candidate = ""
	c.Position = 0
	c.Accumulator = append(append(c.Accumulator[:0], seed...), b)
}

// Persisted layout, little endian:
//
//	magic[4] version(u16) state(i32) position(u32)
//	candidateLen(u32) candidate  accumulatorLen(u32) accumulator
const (
	cursorMagic   = "RCUR"
	cursorVersion = uint16(1)
	cursorHeader  = 4 + 2 + 4 + 4
)

var bo = binary.LittleEndian

// MarshalBinary encodes the cursor for resumption in another process or
// after the connection buffer is released.
func (c *Cursor) MarshalBinary() ([]byte, error) {
	if c.Position < 0 || c.State < PrefixMatch ||
		int64(c.State) > math.MaxInt32 || int64(c.Position) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: state %d position %d", ErrCorruptCursor, c.State, c.Position)
	}
	buf := make([]byte, 0, cursorHeader+8+len(c.Candidate)+len(c.Accumulator))
	buf = append(buf, cursorMagic...)
	buf = bo.AppendUint16(buf, cursorVersion)
	buf = bo.AppendUint32(buf, uint32(int32(c.State)))
	buf = bo.AppendUint32(buf, uint32(c.Position))
	buf = bo.AppendUint32(buf, uint32(len(c.Candidate)))
	buf = append(buf, c.Candidate...)
	buf = bo.AppendUint32(buf, uint32(len(c.Accumulator)))
	buf = append(buf, c.Accumulator...)
	return buf, nil
}

// UnmarshalBinary restores a cursor written by MarshalBinary. Whether the
// restored state belongs to a given automaton is checked when scanning.
func (c *Cursor) UnmarshalBinary(data []byte) error {
	if len(data) < cursorHeader+4 || string(data[:4]) != cursorMagic {
		return fmt.Errorf("%w: bad header", ErrCursorEncoding)
	}
	if v := bo.Uint16(data[4:]); v != cursorVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCursorEncoding, v)
	}
	state := int(int32(bo.Uint32(data[6:])))
	pos := int(bo.Uint32(data[10:]))
	rest := data[cursorHeader:]

	candidate, rest, ok := readChunk(rest)
	if !ok {
		return fmt.Errorf("%w: truncated candidate", ErrCursorEncoding)
	}
	acc, rest, ok := readChunk(rest)
	if !ok || len(rest) != 0 {
		return fmt.Errorf("%w: truncated or trailing accumulator", ErrCursorEncoding)
	}

	c.State = state
	c.Position = pos
	c.Candidate = string(candidate)
	c.Accumulator = append(c.Accumulator[:0], acc...)
	return nil
}

func readChunk(b []byte) (chunk, rest []byte, ok bool) {
	if len(b) < 4 {
		return nil, nil, false
	}
	n := bo.Uint32(b)
	b = b[4:]
	if uint64(n) > uint64(len(b)) {
		return nil, nil, false
	}
	return b[:n], b[n:], true
}
