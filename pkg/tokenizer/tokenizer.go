// Package tokenizer loads a vocabulary file into an FST-backed dictionary,
// compiles it into a recognizer automaton and scans byte streams against it.
package tokenizer

import (
	"sync"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
)

// Config controls tokenizer construction.
type Config struct {
	// Cache keeps compiled automata in an LRU keyed by vocabulary, so
	// reverting an edit does not recompile.
	Cache       bool
	Normalizers NormalizerConfig
}

// DefaultConfig enables the cache and every normalizer.
func DefaultConfig() Config {
	return Config{
		Cache:       true,
		Normalizers: DefaultNormalizerConfig(),
	}
}

// Tokenizer recognizes the words of a dictionary in byte streams.
// It is safe for concurrent use; each Stream is not.
type Tokenizer struct {
	dict  *Dictionary
	cache *recognizer.Cache // nil when disabled

	edit sync.Mutex // serializes dictionary edits with their recompile

	mu  sync.RWMutex
	aut *recognizer.Automaton
}

// NewTokenizer loads the dictionary at dictPath and compiles it.
func NewTokenizer(dictPath string, cfg Config) (*Tokenizer, error) {
	dict, err := NewDictionaryWithNormalizer(dictPath, NewNormalizerFromConfig(cfg.Normalizers))
	if err != nil {
		return nil, err
	}

	t := &Tokenizer{dict: dict}
	if cfg.Cache {
		if t.cache, err = recognizer.NewCache(0); err != nil {
			dict.Close()
			return nil, err
		}
	}

	if err := t.recompile(); err != nil {
		dict.Close()
		return nil, err
	}
	return t, nil
}

// recompile builds the automaton for the current dictionary and checks it
// against the FST before swapping it in.
func (t *Tokenizer) recompile() error {
	words, err := t.dict.Words()
	if err != nil {
		return err
	}

	var a *recognizer.Automaton
	if t.cache != nil {
		a, err = t.cache.Compile(words)
	} else {
		a, err = recognizer.Compile(words)
	}
	if err != nil {
		return err
	}

	if err := t.dict.Verify(a); err != nil {
		return err
	}

	t.mu.Lock()
	t.aut = a
	t.mu.Unlock()
	return nil
}

// Automaton returns the current compiled automaton.
func (t *Tokenizer) Automaton() *recognizer.Automaton {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.aut
}

// Tokenize scans data as a complete stream and returns every token.
func (t *Tokenizer) Tokenize(data []byte) []recognizer.Token {
	return t.Automaton().Tokens(data)
}

// NewStream starts a stream on the current automaton. Later dictionary
// edits do not affect it.
func (t *Tokenizer) NewStream(h recognizer.Handler) *Stream {
	return newStream(t.Automaton(), h)
}

// ResumeStream continues a stream from state produced by
// Stream.MarshalBinary. The dictionary must be unchanged since then.
func (t *Tokenizer) ResumeStream(state []byte, h recognizer.Handler) (*Stream, error) {
	s := newStream(t.Automaton(), h)
	if err := s.cursor.UnmarshalBinary(state); err != nil {
		return nil, err
	}
	return s, nil
}

// AddWord adds a word to the dictionary and recompiles.
func (t *Tokenizer) AddWord(word string) error {
	t.edit.Lock()
	defer t.edit.Unlock()

	if err := t.dict.AddWord(word); err != nil {
		return err
	}
	return t.recompile()
}

// RemoveWord removes a word from the dictionary and recompiles.
func (t *Tokenizer) RemoveWord(word string) error {
	t.edit.Lock()
	defer t.edit.Unlock()

	if err := t.dict.RemoveWord(word); err != nil {
		return err
	}
	return t.recompile()
}

// RebuildDictionary rebuilds the FST, persists it and recompiles.
func (t *Tokenizer) RebuildDictionary() error {
	t.edit.Lock()
	defer t.edit.Unlock()

	if err := t.dict.RebuildFST(); err != nil {
		return err
	}
	return t.recompile()
}

// Close releases resources (call when done with tokenizer).
func (t *Tokenizer) Close() error {
	return t.dict.Close()
}

// DictionaryWordCount returns the number of words in the dictionary.
func (t *Tokenizer) DictionaryWordCount() int {
	return t.dict.WordCount()
}

// CacheSize returns the number of cached automata.
func (t *Tokenizer) CacheSize() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}

// ClearCache empties the automaton cache.
func (t *Tokenizer) ClearCache() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

// CacheEnabled returns true if caching is enabled.
func (t *Tokenizer) CacheEnabled() bool {
	return t.cache != nil
}
