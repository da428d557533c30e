package recognizer

import (
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheSize is the default number of compiled automata kept by NewCache.
const CacheSize = 64

// Cache memoizes compiled automata by vocabulary. Word order and duplicates
// do not affect the key. A Cache is safe for concurrent use.
type Cache struct {
	lru *lru.Cache[string, *Automaton]
}

// NewCache creates a cache holding up to size automata (CacheSize if size <= 0).
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = CacheSize
	}
	c, err := lru.New[string, *Automaton](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Compile returns the cached automaton for words, compiling it on a miss.
// Compilation errors are not cached.
func (c *Cache) Compile(words []string) (*Automaton, error) {
	key := vocabularyKey(words)
	if a, ok := c.lru.Get(key); ok {
		return a, nil
	}

	a, err := Compile(words)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, a)
	return a, nil
}

// Len returns the number of cached automata.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// vocabularyKey builds a canonical key: sorted unique words, each length
// prefixed so that no choice of bytes can make two vocabularies collide.
func vocabularyKey(words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Strings(sorted)

	var b strings.Builder
	prev := ""
	for i, w := range sorted {
		if i > 0 && w == prev {
			continue
		}
		prev = w
		b.WriteString(strconv.Itoa(len(w)))
		b.WriteByte(':')
		b.WriteString(w)
	}
	return b.String()
}
