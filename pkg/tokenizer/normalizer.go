package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// ErrNotLatin1 is returned for a word with characters outside ISO-8859-1.
var ErrNotLatin1 = errors.New("tokenizer: word is not representable in ISO-8859-1")

// NormalizerFunc defines a single normalization step.
type NormalizerFunc func(string) string

// NormalizerConfig selects the steps of the vocabulary normalization pipeline.
type NormalizerConfig struct {
	ComposeNFC         bool
	RemoveControlChars bool
	TrimSpace          bool
}

// DefaultNormalizerConfig enables every step.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		ComposeNFC:         true,
		RemoveControlChars: true,
		TrimSpace:          true,
	}
}

// Normalizer turns UTF-8 vocabulary text into the single-byte words the
// recognizer matches on the wire.
type Normalizer struct {
	steps []NormalizerFunc
}

// NewNormalizer creates a normalizer with the default pipeline.
func NewNormalizer() *Normalizer {
	return NewNormalizerFromConfig(DefaultNormalizerConfig())
}

// NewNormalizerFromConfig creates a normalizer running the enabled steps.
// Steps always run in the order NFC, control characters, trimming.
func NewNormalizerFromConfig(cfg NormalizerConfig) *Normalizer {
	var steps []NormalizerFunc
	if cfg.ComposeNFC {
		steps = append(steps, ComposeNFC)
	}
	if cfg.RemoveControlChars {
		steps = append(steps, RemoveControlChars)
	}
	if cfg.TrimSpace {
		steps = append(steps, TrimSpace)
	}
	return &Normalizer{steps: steps}
}

// NewNormalizerWithSteps creates a normalizer with a custom pipeline.
func NewNormalizerWithSteps(steps ...NormalizerFunc) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order.
func (n *Normalizer) Normalize(s string) string {
	for _, step := range n.steps {
		s = step(s)
	}
	return s
}

// Word normalizes s and encodes it as ISO-8859-1, one byte per character.
func (n *Normalizer) Word(s string) (string, error) {
	return EncodeLatin1(n.Normalize(s))
}

// ComposeNFC applies Unicode NFC normalization, so a + combining umlaut
// becomes ä and has a single-byte encoding.
func ComposeNFC(s string) string {
	return norm.NFC.String(s)
}

// RemoveControlChars removes Unicode control characters.
func RemoveControlChars(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// TrimSpace removes leading and trailing white space.
func TrimSpace(s string) string {
	return strings.TrimSpace(s)
}

// EncodeLatin1 converts UTF-8 text to ISO-8859-1 bytes.
func EncodeLatin1(s string) (string, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotLatin1, s)
	}
	return out, nil
}

// DecodeLatin1 converts ISO-8859-1 bytes to UTF-8. Every byte has a
// mapping, so it never fails.
func DecodeLatin1(s string) string {
	out, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}
