package main

import (
	"fmt"
	"os"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
	"github.com/kerem-kaynak/token-recognizer/pkg/tokenizer"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	dictPath := os.Args[1]
	command := os.Args[2]

	dict, err := tokenizer.NewDictionary(dictPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dictionary: %v\n", err)
		os.Exit(1)
	}
	defer dict.Close()

	switch command {
	case "add":
		if len(os.Args) < 4 {
			fmt.Println("Error: add requires at least one word")
			os.Exit(1)
		}
		for _, word := range os.Args[3:] {
			if err := dict.AddWord(word); err != nil {
				fmt.Fprintf(os.Stderr, "Error adding word '%s': %v\n", word, err)
				os.Exit(1)
			}
			fmt.Printf("Added: %s\n", word)
		}
		fmt.Printf("Total words: %d\n", dict.WordCount())

	case "remove":
		if len(os.Args) < 4 {
			fmt.Println("Error: remove requires at least one word")
			os.Exit(1)
		}
		for _, word := range os.Args[3:] {
			if err := dict.RemoveWord(word); err != nil {
				fmt.Fprintf(os.Stderr, "Error removing word '%s': %v\n", word, err)
				os.Exit(1)
			}
			fmt.Printf("Removed: %s\n", word)
		}
		fmt.Printf("Total words: %d\n", dict.WordCount())

	case "contains":
		if len(os.Args) < 4 {
			fmt.Println("Error: contains requires a word")
			os.Exit(1)
		}
		word := os.Args[3]
		if dict.Contains(word) {
			fmt.Printf("'%s' exists in dictionary\n", word)
		} else {
			fmt.Printf("'%s' NOT in dictionary\n", word)
			os.Exit(1)
		}

	case "prefix":
		if len(os.Args) < 4 {
			fmt.Println("Error: prefix requires a prefix")
			os.Exit(1)
		}
		words, err := dict.WithPrefix(os.Args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing words: %v\n", err)
			os.Exit(1)
		}
		for _, w := range words {
			fmt.Println(tokenizer.DecodeLatin1(w))
		}

	case "rebuild":
		if err := dict.RebuildFST(); err != nil {
			fmt.Fprintf(os.Stderr, "Error rebuilding FST: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("FST rebuilt. Total words: %d\n", dict.WordCount())

	case "verify":
		a := compile(dict)
		if err := dict.Verify(a); err != nil {
			fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Automaton recognizes all %d words and nothing else\n", dict.WordCount())

	case "states":
		if err := compile(dict).Describe(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "stats":
		st := compile(dict).Stats()
		fmt.Printf("Dictionary: %s\n", dictPath)
		fmt.Printf("Word count: %d\n", dict.WordCount())
		fmt.Printf("Trie nodes: %d\n", st.TrieNodes)
		fmt.Printf("Dispatch states: %d (%d table, %d linear)\n", st.DispatchStates, st.TableStates, st.LinearStates)
		fmt.Printf("Prefix-match branches: %d\n", st.PrefixStates)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func compile(dict *tokenizer.Dictionary) *recognizer.Automaton {
	words, err := dict.Words()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dictionary: %v\n", err)
		os.Exit(1)
	}
	a, err := recognizer.Compile(words)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error compiling automaton: %v\n", err)
		os.Exit(1)
	}
	return a
}

func printUsage() {
	fmt.Println("Usage: dictmgr <dictionary.txt> <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <word> [word...]    Add words to dictionary")
	fmt.Println("  remove <word> [word...] Remove words from dictionary")
	fmt.Println("  contains <word>         Check if word exists")
	fmt.Println("  prefix <prefix>         List words starting with prefix")
	fmt.Println("  rebuild                 Rebuild FST from text file")
	fmt.Println("  verify                  Check the compiled automaton against the FST")
	fmt.Println("  states                  Print every dispatch state")
	fmt.Println("  stats                   Show dictionary and automaton statistics")
}
