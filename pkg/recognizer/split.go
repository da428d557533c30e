package recognizer

// RawToken is a delimiter-separated token of a complete buffer.
type RawToken struct {
	Text  string
	Start int
	End   int
}

// SplitWords splits a complete buffer on Delimiter. Runs of delimiters
// produce no empty tokens, and a trailing token without a delimiter is
// included. It is the non-incremental reference for Scan.
func SplitWords(data []byte) []RawToken {
	var tokens []RawToken

	start := -1
	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != Delimiter {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, RawToken{
				Text:  string(data[start:i]),
				Start: start,
				End:   i,
			})
			start = -1
		}
	}

	return tokens
}
