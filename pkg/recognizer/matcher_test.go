package recognizer

import (
	"testing"
)

func walk(m *Matcher, s string) int {
	state := m.Start()
	for i := 0; i < len(s) && state != 0; i++ {
		state = m.Accept(state, s[i])
	}
	return state
}

func TestMatcher_AcceptsVocabulary(t *testing.T) {
	m := MustCompile(httpTokens).Matcher()

	for _, w := range httpTokens {
		s := walk(m, w)
		if !m.CanMatch(s) || !m.IsMatch(s) {
			t.Errorf("walk(%q) = %d, CanMatch %v IsMatch %v", w, s, m.CanMatch(s), m.IsMatch(s))
		}
	}
}

func TestMatcher_RejectsOthers(t *testing.T) {
	m := MustCompile(httpTokens).Matcher()

	tests := []struct {
		input    string
		canMatch bool
	}{
		{"", true},
		{"PU", true},
		{"Accept-", true},
		{"Content-Typ", true},
		{"PUTX", false},
		{"Set-Cookie3", false},
		{"Host ", false},
		{"host", false},
		{"Zebra", false},
	}

	for _, tt := range tests {
		s := walk(m, tt.input)
		if m.IsMatch(s) {
			t.Errorf("IsMatch(walk(%q)) = true", tt.input)
		}
		if m.CanMatch(s) != tt.canMatch {
			t.Errorf("CanMatch(walk(%q)) = %v, want %v", tt.input, m.CanMatch(s), tt.canMatch)
		}
	}
}

func TestMatcher_WordInsideCollapsedChain(t *testing.T) {
	a := MustCompile([]string{"GET", "GETS"})
	m := a.Matcher()

	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"G", false},
		{"GE", false},
		{"GET", true},
		{"GETS", true},
		{"GETSX", false},
	} {
		if got := m.IsMatch(walk(m, tt.input)); got != tt.want {
			t.Errorf("IsMatch(walk(%q)) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMatcher_NeverRevisitsStart(t *testing.T) {
	a := MustCompile(httpTokens)
	m := a.Matcher()

	for s := m.Start(); s < m.limit; s++ {
		for b := 0; b < 256; b++ {
			next := m.Accept(s, byte(b))
			if next == m.Start() {
				t.Fatalf("Accept(%d, %q) returned the start state", s, byte(b))
			}
			if next < 0 || next >= m.limit {
				t.Fatalf("Accept(%d, %q) = %d outside [0,%d)", s, byte(b), next, m.limit)
			}
		}
	}
	if m.WillAlwaysMatch(m.Start()) {
		t.Error("WillAlwaysMatch(start) = true")
	}
}
