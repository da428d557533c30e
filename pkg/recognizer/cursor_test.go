package recognizer

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"testing"
)

// resume persists c and restores it into a fresh cursor.
func resume(t *testing.T, c *Cursor) *Cursor {
	t.Helper()
	data, err := c.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	var out Cursor
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	return &out
}

func TestCursor_ResumeMidToken(t *testing.T) {
	a := MustCompile(httpTokens)

	tests := []struct {
		name  string
		first string
		rest  string
		state int // 0 for any dispatch state
		want  Token
	}{
		{"prefix match", "Content-Ty", "pe ", PrefixMatch, Token{Text: "Content-Type", Known: true}},
		{"accumulating", "X-Custom", "-Header ", NoState, Token{Text: "X-Custom-Header"}},
		{"dispatch", "Acc", "ept ", 0, Token{Text: "Accept", Known: true}},
	}

	for _, tt := range tests {
		var tokens []Token
		h := func(tok Token) bool {
			tokens = append(tokens, tok)
			return true
		}

		var c Cursor
		if _, err := a.Scan([]byte(tt.first), &c, h); err != nil {
			t.Fatalf("%s: Scan() error = %v", tt.name, err)
		}
		if tt.state >= 0 && c.State < 0 || tt.state < 0 && c.State != tt.state {
			t.Errorf("%s: State = %d after %q, want %d", tt.name, c.State, tt.first, tt.state)
		}

		r := resume(t, &c)
		if r.State != c.State || r.Candidate != c.Candidate || r.Position != c.Position || string(r.Accumulator) != string(c.Accumulator) {
			t.Errorf("%s: restored %+v, want %+v", tt.name, *r, c)
		}
		if _, err := a.Scan([]byte(tt.rest), r, h); err != nil {
			t.Fatalf("%s: Scan() after resume error = %v", tt.name, err)
		}
		if len(tokens) != 1 || tokens[0] != tt.want {
			t.Errorf("%s: tokens = %v, want [%v]", tt.name, tokens, tt.want)
		}
	}
}

func TestCursor_ResumeAtEveryOffset(t *testing.T) {
	a := MustCompile(httpTokens)
	data := []byte("Host  Content-Length Content-Lengthy Set-Cookie2 Set-Cookie3 X Via")
	want := a.Tokens(data)

	for i := 0; i <= len(data); i++ {
		var got []Token
		h := func(tok Token) bool {
			got = append(got, tok)
			return true
		}

		var c Cursor
		if _, err := a.Scan(data[:i], &c, h); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		r := resume(t, &c)
		if _, err := a.Scan(data[i:], r, h); err != nil {
			t.Fatalf("offset %d: Scan() error = %v", i, err)
		}
		if err := a.Finish(r, h); err != nil {
			t.Fatalf("offset %d: Finish() error = %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("offset %d: tokens = %v, want %v", i, got, want)
		}
	}
}

func TestCursor_Reset(t *testing.T) {
	c := NewCursor()
	if c.Pending() {
		t.Error("new cursor is pending")
	}

	c.accumulate("Ac", 'z')
	if !c.Pending() || string(c.Accumulator) != "Acz" {
		t.Errorf("accumulate: State = %d Accumulator = %q", c.State, c.Accumulator)
	}

	c.Reset()
	if c.Pending() || len(c.Accumulator) != 0 || cap(c.Accumulator) == 0 {
		t.Errorf("Reset: %+v cap %d", *c, cap(c.Accumulator))
	}
}

func TestCursor_UnmarshalInvalid(t *testing.T) {
	valid, err := (&Cursor{State: PrefixMatch, Candidate: "PUT", Position: 2}).MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 9

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("XCUR"), valid[4:]...)},
		{"bad version", badVersion},
		{"truncated", valid[:len(valid)-1]},
		{"trailing", append(append([]byte(nil), valid...), 0)},
		{"header only", valid[:cursorHeader]},
	}

	for _, tt := range tests {
		var c Cursor
		if err := c.UnmarshalBinary(tt.data); !errors.Is(err, ErrCursorEncoding) {
			t.Errorf("%s: UnmarshalBinary() = %v, want ErrCursorEncoding", tt.name, err)
		}
	}
}

func TestCursor_MarshalCorrupt(t *testing.T) {
	tests := []Cursor{
		{State: 0, Position: -1},
		{State: -7},
	}

	for _, c := range tests {
		if _, err := c.MarshalBinary(); !errors.Is(err, ErrCorruptCursor) {
			t.Errorf("MarshalBinary(%+v) = %v, want ErrCorruptCursor", c, err)
		}
	}
}

func TestCursor_MarshalOutOfRange(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("int cannot exceed the encoded field widths")
	}
	state := int64(math.MaxInt32) + 1
	position := int64(math.MaxUint32) + 1

	tests := []Cursor{
		{State: int(state)},
		{State: PrefixMatch, Candidate: "PUT", Position: int(position)},
	}

	for _, c := range tests {
		if _, err := c.MarshalBinary(); !errors.Is(err, ErrCorruptCursor) {
			t.Errorf("MarshalBinary(state %d position %d) = %v, want ErrCorruptCursor", c.State, c.Position, err)
		}
	}

	edge := Cursor{State: math.MaxInt32}
	data, err := edge.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary(max state) error = %v", err)
	}
	var back Cursor
	if err := back.UnmarshalBinary(data); err != nil || back.State != math.MaxInt32 {
		t.Errorf("UnmarshalBinary() = (%d, %v), want state %d", back.State, err, math.MaxInt32)
	}
}

func TestCursor_ResumeOnOtherVocabulary(t *testing.T) {
	a := MustCompile(httpTokens)
	var c Cursor
	if _, err := a.Scan([]byte("Warn"), &c, func(Token) bool { return true }); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	b := MustCompile([]string{"PUT", "POST"})
	r := resume(t, &c)
	if _, err := b.Scan([]byte("ing "), r, func(Token) bool { return true }); !errors.Is(err, ErrCorruptCursor) {
		t.Errorf("Scan() on other automaton = %v, want ErrCorruptCursor", err)
	}
}
