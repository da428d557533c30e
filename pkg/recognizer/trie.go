package recognizer

import (
	"fmt"
	"sort"
	"strings"
)

// trieNode is one distinct prefix of the vocabulary.
type trieNode struct {
	value    byte   // byte leading here from the parent, zero at the root
	soFar    string // prefix matched to reach this node
	terminal bool   // a vocabulary word ends here
	children map[byte]*trieNode
}

func newTrieNode(value byte, soFar string) *trieNode {
	return &trieNode{
		value:    value,
		soFar:    soFar,
		children: make(map[byte]*trieNode),
	}
}

// buildTrie inserts every word into a trie rooted at the empty prefix.
// Duplicates collapse; the shape does not depend on word order.
func buildTrie(words []string) (*trieNode, error) {
	root := newTrieNode(0, "")
	for i, word := range words {
		if err := ValidateWord(word); err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		root.insert(word)
	}
	return root, nil
}

// ValidateWord reports whether word can be part of a vocabulary. Empty
// words and words containing the delimiter could never be recognized.
func ValidateWord(word string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if strings.IndexByte(word, Delimiter) >= 0 {
		return fmt.Errorf("%w: %q", ErrDelimiterInWord, word)
	}
	return nil
}

func (n *trieNode) insert(word string) {
	cur := n
	for i := 0; i < len(word); i++ {
		b := word[i]
		next, ok := cur.children[b]
		if !ok {
			next = newTrieNode(b, word[:i+1])
			cur.children[b] = next
		}
		cur = next
	}
	cur.terminal = true
}

// sortedKeys returns the outgoing bytes in ascending order.
func (n *trieNode) sortedKeys() []byte {
	keys := make([]byte, 0, len(n.children))
	for b := range n.children {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// collapse follows the single-child chain below n. It returns the word at
// the end of the chain when the chain reaches a leaf without branching.
// A leaf collapses to itself.
func (n *trieNode) collapse() (string, bool) {
	cur := n
	for {
		switch len(cur.children) {
		case 0:
			return cur.soFar, true
		case 1:
			for _, child := range cur.children {
				cur = child
			}
		default:
			return "", false
		}
	}
}

// count returns the number of nodes in the subtree rooted at n.
func (n *trieNode) count() int {
	total := 1
	for _, child := range n.children {
		total += child.count()
	}
	return total
}
