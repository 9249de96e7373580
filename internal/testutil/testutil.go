// Package testutil provides shared fixture helpers for tokenizer tests.
//
// Typical usage:
//
//	func TestEncode(t *testing.T) {
//	    tok := testutil.FittedTokenizer(t, []string{"the cat sat"},
//	        tokenizer.WithOOVToken("<UNK>"))
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-wordtok/internal/tokenizer"
)

// FittedTokenizer builds a tokenizer with the given options, fits it on
// texts, and fails the test on any construction error.
func FittedTokenizer(tb testing.TB, texts []string, opts ...tokenizer.Option) *tokenizer.Tokenizer {
	tb.Helper()

	tok, err := tokenizer.New(opts...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	tok.FitOnTexts(texts)

	return tok
}

// WriteCorpus writes lines to a temp corpus file, one document per line,
// and returns its path. The file is removed when the test finishes.
func WriteCorpus(tb testing.TB, lines ...string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		tb.Fatalf("write corpus: %v", err)
	}

	return path
}

// WriteRecord fits a tokenizer on texts, exports it, writes the record to
// a temp file, and returns its path.
func WriteRecord(tb testing.TB, texts []string, opts ...tokenizer.Option) string {
	tb.Helper()

	tok := FittedTokenizer(tb, texts, opts...)
	data, err := tok.ToJSON()
	if err != nil {
		tb.Fatalf("ToJSON: %v", err)
	}

	path := filepath.Join(tb.TempDir(), "tokenizer.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write record: %v", err)
	}

	return path
}
