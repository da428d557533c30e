package recognizer

import "errors"

var (
	// ErrEmptyWord is returned when the vocabulary contains an empty word.
	ErrEmptyWord = errors.New("recognizer: empty vocabulary word")

	// ErrDelimiterInWord is returned for a vocabulary word containing the delimiter byte.
	ErrDelimiterInWord = errors.New("recognizer: vocabulary word contains the delimiter")

	// ErrCompilerDefect reports a broken compiler invariant. It is never caused by input.
	ErrCompilerDefect = errors.New("recognizer: compiler defect")

	// ErrCorruptCursor is returned when a cursor does not describe a state of the automaton.
	ErrCorruptCursor = errors.New("recognizer: corrupt cursor state")

	// ErrCursorEncoding is returned when persisted cursor bytes cannot be decoded.
	ErrCursorEncoding = errors.New("recognizer: invalid cursor encoding")
)
