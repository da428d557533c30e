package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kerem-kaynak/token-recognizer/pkg/tokenizer"
)

func TestStream_AnswersBeforeEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	if err := os.WriteFile(path, []byte("GET\nHost\n"), 0o644); err != nil {
		t.Fatalf("Failed to write dictionary: %v", err)
	}
	tok, err := tokenizer.NewTokenizer(path, tokenizer.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create tokenizer: %v", err)
	}
	defer tok.Close()

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- stream(tok, inR, outW)
		outW.Close()
	}()

	// Input stays open: both lines must arrive without waiting for EOF.
	go inW.Write([]byte("GET X-Id "))

	out := bufio.NewReader(outR)
	for _, want := range []string{
		`{"text":"GET","known":true}` + "\n",
		`{"text":"X-Id","known":false}` + "\n",
	} {
		got, err := out.ReadString('\n')
		if err != nil {
			t.Fatalf("ReadString() error = %v", err)
		}
		if got != want {
			t.Errorf("line = %q, want %q", got, want)
		}
	}

	if _, err := inW.Write([]byte("Host")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	inW.Close()

	got, err := out.ReadString('\n')
	if err != nil {
		t.Fatalf("ReadString() error = %v", err)
	}
	if want := `{"text":"Host","known":true}` + "\n"; got != want {
		t.Errorf("flushed line = %q, want %q", got, want)
	}
	if err := <-done; err != nil {
		t.Errorf("stream() error = %v", err)
	}
}
