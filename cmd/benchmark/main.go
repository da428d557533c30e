package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
	"github.com/kerem-kaynak/token-recognizer/pkg/tokenizer"
)

const (
	iterations = 100000
	warmup     = 1000
	boxWidth   = 62

	// ANSI color codes
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

var line = strings.Repeat("─", boxWidth)

func main() {
	dictPath := "dictionaries/http_tokens.txt"
	if len(os.Args) > 1 {
		dictPath = os.Args[1]
	}

	fmt.Print("Loading vocabulary... ")
	start := time.Now()
	tok, err := tokenizer.NewTokenizer(dictPath, tokenizer.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer tok.Close()
	aut := tok.Automaton()
	fmt.Printf("done (%d words, %d dispatch states in %v)\n",
		tok.DictionaryWordCount(), aut.NumStates(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Iterations: %d (warmup: %d)\n", iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	singleWord := []byte("Content-Type")
	unknownWord := []byte("X-Forwarded-For")
	request := []byte("GET Host Accept Accept-Encoding Accept-Language Cookie Connection User-Agent X-Forwarded-For")
	discard := func(recognizer.Token) bool { return true }

	printHeader("FULL PIPELINE THROUGHPUT")
	bench("Known word", func() { tok.Tokenize(singleWord) })
	bench("Unknown word", func() { tok.Tokenize(unknownWord) })
	bench("Request (9 tokens)", func() { tok.Tokenize(request) })
	s := tok.NewStream(discard)
	bench("Stream write (9 tokens)", func() { s.Write(request) })
	printFooter()
	fmt.Println()

	printHeader("SCANNER BREAKDOWN")
	var c recognizer.Cursor
	bench("Scan (one buffer)", func() { aut.Scan(request, &c, discard) })
	bench("Scan (8-byte chunks)", func() {
		for off := 0; off < len(request); off += 8 {
			end := off + 8
			if end > len(request) {
				end = len(request)
			}
			aut.Scan(request[off:end], &c, discard)
		}
	})
	bench("Feed (byte at a time)", func() {
		for _, b := range request {
			aut.Feed(b, &c, discard)
		}
	})
	bench("SplitWords baseline", func() { recognizer.SplitWords(request) })
	printFooter()
	fmt.Println()

	printHeader("COMPONENT BREAKDOWN")
	words := aut.Words()
	dict, err := tokenizer.NewDictionary(dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dict.Close()
	bench("Dictionary lookup (FST)", func() { dict.Contains("Proxy-Authorization") })
	bench("Automaton lookup (map)", func() { aut.Contains("Proxy-Authorization") })

	cache, err := recognizer.NewCache(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cache.Compile(words)
	bench("Compile (cache hit)", func() { cache.Compile(words) })
	bench("Compile (cache miss)", func() { recognizer.Compile(words) })
	printFooter()
	fmt.Println()

	printHeader("NORMALIZER STEPS BREAKDOWN")
	bench("Compose NFC", func() {
		tokenizer.ComposeNFC("Größe")
	})
	bench("Remove control chars", func() {
		tokenizer.RemoveControlChars("Content-Type\r")
	})
	bench("Trim space", func() {
		tokenizer.TrimSpace("  Content-Type ")
	})
	bench("Encode Latin-1", func() {
		tokenizer.EncodeLatin1("Größe")
	})
	bench("Decode Latin-1", func() {
		tokenizer.DecodeLatin1("Gr\xf6\xdfe")
	})
	printFooter()
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	// Truncate name if too long
	displayName := name
	if len(displayName) > 26 {
		displayName = displayName[:26]
	}

	// Format with colors - build plain string for padding, colored for display
	plain := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", displayName, opsPerSec, nsPerOp)
	padded := padLine(plain)

	colored := fmt.Sprintf("  %-26s %s%10.0f%s ops/sec %s%8.0f%s ns",
		displayName,
		colorGreen, opsPerSec, colorReset,
		colorYellow, nsPerOp, colorReset)

	extraPad := len(padded) - len(plain)
	if extraPad > 0 {
		colored += strings.Repeat(" ", extraPad)
	}

	fmt.Println(colorDim + "│" + colorReset + colored + colorDim + "│" + colorReset)
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(colorDim + "┌" + line + "┐" + colorReset)
	printTitleRow("  " + title)
	fmt.Println(colorDim + "├" + line + "┤" + colorReset)
}

func printFooter() {
	fmt.Println(colorDim + "└" + line + "┘" + colorReset)
}

func printTitleRow(content string) {
	fmt.Println(colorDim + "│" + colorReset + colorCyan + padLine(content) + colorReset + colorDim + "│" + colorReset)
}
