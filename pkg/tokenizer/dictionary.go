package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/vellum"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
)

var (
	// ErrDictionaryClosed is returned by operations on a closed dictionary.
	ErrDictionaryClosed = errors.New("tokenizer: dictionary closed")

	// ErrVocabularyMismatch is returned by Verify when an automaton does not
	// recognize exactly the dictionary words.
	ErrVocabularyMismatch = errors.New("tokenizer: automaton does not match dictionary")

	// ErrUnstorableWord is returned for a word the text file cannot hold:
	// one starting with the comment marker or containing a line break.
	ErrUnstorableWord = errors.New("tokenizer: word cannot be stored in the text file")
)

var _ vellum.Automaton = (*recognizer.Matcher)(nil)

// Dictionary holds the recognized vocabulary in an FST persisted next to its
// text source. Words are stored ISO-8859-1 encoded, exactly as they appear
// on the wire, and lookups are case-sensitive.
type Dictionary struct {
	fst        *vellum.FST
	words      map[string]struct{} // Source of truth for modifications
	normalizer *Normalizer
	fstPath    string
	txtPath    string
	mu         sync.RWMutex
}

// NewDictionary loads the vocabulary from a UTF-8 text file, one word per
// line, using the default normalizer. Blank lines and lines starting with
// '#' are skipped. If the FST is missing or stale, it is built from the
// text file.
func NewDictionary(txtPath string) (*Dictionary, error) {
	return NewDictionaryWithNormalizer(txtPath, NewNormalizer())
}

// NewDictionaryWithNormalizer is like NewDictionary with a custom normalizer.
func NewDictionaryWithNormalizer(txtPath string, n *Normalizer) (*Dictionary, error) {
	d := &Dictionary{
		words:      make(map[string]struct{}),
		normalizer: n,
		fstPath:    strings.TrimSuffix(txtPath, ".txt") + ".fst",
		txtPath:    txtPath,
	}

	if err := d.loadTextFile(); err != nil {
		return nil, err
	}

	if err := d.loadOrBuildFST(); err != nil {
		return nil, err
	}

	return d, nil
}

// loadTextFile reads words from the source text file.
func (d *Dictionary) loadTextFile() error {
	file, err := os.Open(d.txtPath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := d.normalizer.Normalize(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		word, err := d.encode(text)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", d.txtPath, line, err)
		}
		d.words[word] = struct{}{}
	}
	return scanner.Err()
}

// encode turns normalized text into a valid vocabulary word that survives a
// round trip through the text file.
func (d *Dictionary) encode(text string) (string, error) {
	word, err := EncodeLatin1(text)
	if err != nil {
		return "", err
	}
	if err := recognizer.ValidateWord(word); err != nil {
		return "", err
	}
	if strings.HasPrefix(word, "#") || strings.ContainsAny(word, "\r\n") {
		return "", fmt.Errorf("%w: %q", ErrUnstorableWord, text)
	}
	return word, nil
}

// loadOrBuildFST loads the existing FST when it holds exactly the text
// file's words, and rebuilds it otherwise.
func (d *Dictionary) loadOrBuildFST() error {
	if fst, err := vellum.Open(d.fstPath); err == nil {
		if d.sameWords(fst) {
			d.fst = fst
			return nil
		}
		fst.Close()
	}

	return d.writeFST()
}

func (d *Dictionary) sameWords(fst *vellum.FST) bool {
	if fst.Len() != len(d.words) {
		return false
	}
	itr, err := fst.Iterator(nil, nil)
	for err == nil {
		key, _ := itr.Current()
		if _, ok := d.words[string(key)]; !ok {
			return false
		}
		err = itr.Next()
	}
	return err == vellum.ErrIteratorDone
}

// Contains reports whether word, after normalization, is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	w, err := d.normalizer.Word(word)
	if err != nil {
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.fst == nil {
		return false
	}
	exists, _ := d.fst.Contains([]byte(w))
	return exists
}

// AddWord adds a word to the dictionary, rebuilds the FST and saves the
// text file.
func (d *Dictionary) AddWord(word string) error {
	w, err := d.encode(d.normalizer.Normalize(word))
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.words[w]; exists {
		return nil
	}
	d.words[w] = struct{}{}
	if err := d.rebuildFST(); err != nil {
		delete(d.words, w)
		return err
	}
	return nil
}

// RemoveWord removes a word from the dictionary, rebuilds the FST and saves
// the text file.
func (d *Dictionary) RemoveWord(word string) error {
	w, err := d.normalizer.Word(word)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.words[w]; !exists {
		return nil
	}
	delete(d.words, w)
	if err := d.rebuildFST(); err != nil {
		d.words[w] = struct{}{}
		return err
	}
	return nil
}

// RebuildFST rebuilds the FST from the current word set and saves to disk.
func (d *Dictionary) RebuildFST() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rebuildFST()
}

// rebuildFST rebuilds FST and text file without locking (caller must hold lock).
func (d *Dictionary) rebuildFST() error {
	if err := d.writeFST(); err != nil {
		return err
	}
	return d.saveTextFile()
}

// writeFST replaces the FST file with the current word set and reopens it.
func (d *Dictionary) writeFST() error {
	if d.fst != nil {
		d.fst.Close()
		d.fst = nil
	}

	fstFile, err := os.Create(d.fstPath)
	if err != nil {
		return err
	}

	builder, err := vellum.New(fstFile, nil)
	if err != nil {
		fstFile.Close()
		return err
	}

	// vellum requires keys in lexicographic byte order.
	for _, word := range d.sortedWords() {
		if err := builder.Insert([]byte(word), 0); err != nil {
			builder.Close()
			fstFile.Close()
			return err
		}
	}

	if err := builder.Close(); err != nil {
		fstFile.Close()
		return err
	}
	if err := fstFile.Close(); err != nil {
		return err
	}

	fst, err := vellum.Open(d.fstPath)
	if err != nil {
		return err
	}
	d.fst = fst
	return nil
}

// saveTextFile writes the current word set back to the text file as UTF-8.
func (d *Dictionary) saveTextFile() error {
	file, err := os.Create(d.txtPath)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, word := range d.sortedWords() {
		if _, err := file.WriteString(DecodeLatin1(word) + "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) sortedWords() []string {
	sorted := make([]string, 0, len(d.words))
	for word := range d.words {
		sorted = append(sorted, word)
	}
	sort.Strings(sorted)
	return sorted
}

// Words returns every word in ascending byte order, ISO-8859-1 encoded.
func (d *Dictionary) Words() ([]string, error) {
	return d.iterate(nil, nil)
}

// WithPrefix returns the words starting with prefix, ISO-8859-1 encoded.
func (d *Dictionary) WithPrefix(prefix string) ([]string, error) {
	p, err := EncodeLatin1(d.normalizer.Normalize(prefix))
	if err != nil {
		return nil, err
	}
	if p == "" {
		return d.iterate(nil, nil)
	}
	return d.iterate([]byte(p), prefixEnd([]byte(p)))
}

func (d *Dictionary) iterate(start, end []byte) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.fst == nil {
		return nil, ErrDictionaryClosed
	}

	var out []string
	itr, err := d.fst.Iterator(start, end)
	for err == nil {
		key, _ := itr.Current()
		out = append(out, string(key))
		err = itr.Next()
	}
	if err != vellum.ErrIteratorDone {
		return nil, err
	}
	return out, nil
}

// prefixEnd returns the smallest key greater than every key starting with
// prefix, or nil when there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Verify checks that a recognizes exactly the dictionary words by running
// its matcher over the FST.
func (d *Dictionary) Verify(a *recognizer.Automaton) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.fst == nil {
		return ErrDictionaryClosed
	}

	matched := 0
	itr, err := d.fst.Search(a.Matcher(), nil, nil)
	for err == nil {
		matched++
		err = itr.Next()
	}
	if err != vellum.ErrIteratorDone {
		return err
	}

	total := d.fst.Len()
	if words := a.Stats().Words; matched != total || words != total {
		return fmt.Errorf("%w: %d of %d words recognized, automaton holds %d",
			ErrVocabularyMismatch, matched, total, words)
	}
	return nil
}

// Close releases FST resources.
func (d *Dictionary) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fst != nil {
		err := d.fst.Close()
		d.fst = nil
		return err
	}
	return nil
}

// WordCount returns the number of words in the dictionary.
func (d *Dictionary) WordCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}
