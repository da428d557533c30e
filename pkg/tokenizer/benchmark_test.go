package tokenizer

import (
	"bytes"
	"testing"

	"github.com/kerem-kaynak/token-recognizer/pkg/recognizer"
)

func BenchmarkTokenize_SingleWord(b *testing.B) {
	tok := newTestTokenizer(b, DefaultConfig())
	data := []byte("Content-Type")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(data)
	}
}

func BenchmarkTokenize_RequestLine(b *testing.B) {
	tok := newTestTokenizer(b, DefaultConfig())
	data := []byte("GET Host Accept Accept-Encoding Accept-Language Cookie Connection User-Agent X-Forwarded-For")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(data)
	}
}

func BenchmarkStream_Write(b *testing.B) {
	tok := newTestTokenizer(b, DefaultConfig())
	data := bytes.Repeat([]byte("POST Content-Length Content-Type Transfer-Encoding X-Id "), 32)
	s := tok.NewStream(func(recognizer.Token) bool { return true })

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Write(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNormalizer_Word(b *testing.B) {
	n := NewNormalizer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Word(" Größe\r\n")
	}
}

func BenchmarkDictionary_Contains(b *testing.B) {
	d, err := NewDictionary(getTestDictPath(b))
	if err != nil {
		b.Fatalf("Failed to create dictionary: %v", err)
	}
	defer d.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Contains("Proxy-Authorization")
	}
}

func BenchmarkTokenizer_Recompile(b *testing.B) {
	tok := newTestTokenizer(b, Config{Normalizers: DefaultNormalizerConfig()})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tok.recompile(); err != nil {
			b.Fatal(err)
		}
	}
}
