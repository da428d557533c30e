package tokenizer

import (
	"errors"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
)

var (
	// ErrStopped is returned by Write once the handler has asked to stop.
	ErrStopped = errors.New("tokenizer: stream stopped by handler")

	// ErrStreamClosed is returned by Write after Close.
	ErrStreamClosed = errors.New("tokenizer: stream closed")
)

// Stream is an io.WriteCloser that tokenizes everything written to it.
// Tokens spanning Write calls are reassembled. A Stream is not safe for
// concurrent use.
type Stream struct {
	aut     *recognizer.Automaton
	cursor  recognizer.Cursor
	handler recognizer.Handler
	sink    recognizer.Handler
	stopped bool
	closed  bool
}

func newStream(a *recognizer.Automaton, h recognizer.Handler) *Stream {
	s := &Stream{aut: a, handler: h}
	s.sink = func(tok recognizer.Token) bool {
		if !s.handler(tok) {
			s.stopped = true
			return false
		}
		return true
	}
	return s
}

// Write scans p. When the handler stops the stream, Write returns the bytes
// consumed up to and including the delimiter of the last token, and
// ErrStopped. Every later Write fails with ErrStopped.
func (s *Stream) Write(p []byte) (int, error) {
	switch {
	case s.closed:
		return 0, ErrStreamClosed
	case s.stopped:
		return 0, ErrStopped
	}

	n, err := s.aut.Scan(p, &s.cursor, s.sink)
	if err != nil {
		return n, err
	}
	if s.stopped {
		return n, ErrStopped
	}
	return n, nil
}

// Close delivers the unfinished token, if any. It is safe to call more
// than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.stopped {
		return nil
	}
	return s.aut.Finish(&s.cursor, s.sink)
}

// Pending reports whether an unfinished token is buffered.
func (s *Stream) Pending() bool {
	return s.cursor.Pending()
}

// MarshalBinary encodes the stream position for Tokenizer.ResumeStream.
func (s *Stream) MarshalBinary() ([]byte, error) {
	return s.cursor.MarshalBinary()
}
