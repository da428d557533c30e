package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
	"github.com/kerem-kaynak/token-recognizer/pkg/tokenizer"
)

type jsonToken struct {
	Text  string `json:"text"`
	Known bool   `json:"known"`
}

func toJSON(tok recognizer.Token) jsonToken {
	return jsonToken{Text: tokenizer.DecodeLatin1(tok.Text), Known: tok.Known}
}

// wire converts UTF-8 terminal input to the single-byte form matched on the
// wire, keeping the raw bytes when some character has no such form.
func wire(text string) []byte {
	if b, err := tokenizer.EncodeLatin1(text); err == nil {
		return []byte(b)
	}
	return []byte(text)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: tokenize <dictionary_path> [text]")
		fmt.Println("       tokenize <dictionary_path> -        (stream stdin, one JSON token per line)")
		fmt.Println("       tokenize <dictionary_path>          (interactive mode)")
		os.Exit(1)
	}

	dictPath := os.Args[1]

	tok, err := tokenizer.NewTokenizer(dictPath, tokenizer.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	defer tok.Close()

	if len(os.Args) == 3 && os.Args[2] == "-" {
		if err := stream(tok, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If text provided as argument, tokenize and exit
	if len(os.Args) > 2 {
		text := strings.Join(os.Args[2:], " ")
		printTokens(tok.Tokenize(wire(text)), "")
		return
	}

	// Interactive mode
	fmt.Println("Token Recognizer (interactive mode)")
	fmt.Printf("Dictionary loaded: %d words, %d dispatch states\n",
		tok.DictionaryWordCount(), tok.Automaton().NumStates())
	fmt.Println("Type space-separated tokens, press Enter to recognize. Ctrl+C to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if text == "" {
			continue
		}

		printTokens(tok.Tokenize(wire(text)), "  ")
		fmt.Println()
	}
}

func printTokens(tokens []recognizer.Token, indent string) {
	out := make([]jsonToken, len(tokens))
	for i, t := range tokens {
		out[i] = toJSON(t)
	}
	output, _ := json.Marshal(out)
	fmt.Printf("%s%s\n", indent, output)
}

// stream reads r through a tokenizer stream. Tokens completed by a read are
// written and flushed before the next read, so piped input is answered
// without waiting for EOF.
func stream(tok *tokenizer.Tokenizer, r io.Reader, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	enc := json.NewEncoder(bw)
	var encErr error
	s := tok.NewStream(func(t recognizer.Token) bool {
		encErr = enc.Encode(toJSON(t))
		return encErr == nil
	})

	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, err := s.Write(buf[:n]); err != nil {
				if encErr != nil {
					return encErr
				}
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}

	if err := s.Close(); err != nil {
		return err
	}
	return encErr
}
