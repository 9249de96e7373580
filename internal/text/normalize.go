// Package text turns raw input text into word or character tokens.
// Normalization is a pure transform: the same input and options always
// produce the same token slice, and no state is kept between calls.
package text

import "strings"

// DefaultFilters is the set of characters removed during normalization:
// ASCII punctuation plus tab and newline. The apostrophe is deliberately
// absent so contractions like "don't" survive as single tokens.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// DefaultSplit is the default word separator.
const DefaultSplit = " "

// Options control how Normalize turns raw text into tokens.
type Options struct {
	// Filters lists characters stripped from the text before splitting.
	Filters string
	// Lower folds the text to lowercase before filtering.
	Lower bool
	// Split is the separator for word splitting. Ignored when CharLevel.
	Split string
	// CharLevel treats every remaining character as its own token.
	CharLevel bool
}

// DefaultOptions returns the standard word-level normalization settings:
// lowercase, punctuation filtered, split on single spaces.
func DefaultOptions() Options {
	return Options{
		Filters: DefaultFilters,
		Lower:   true,
		Split:   DefaultSplit,
	}
}

// Normalize converts raw text into an ordered slice of tokens.
//
// In word mode, each filtered character is replaced with the split
// separator before splitting, so punctuation both disappears from tokens
// and acts as a word boundary ("well-known" with '-' filtered yields two
// tokens). Empty fragments produced by splitting are discarded.
//
// In char-level mode, filtered characters are dropped and every remaining
// character becomes one token; no splitting takes place.
//
// Input that is empty after filtering yields an empty slice, never an error.
func Normalize(s string, opts Options) []string {
	if opts.Lower {
		s = strings.ToLower(s)
	}

	if opts.CharLevel {
		return charTokens(s, opts.Filters)
	}

	if opts.Filters != "" {
		s = replaceFiltered(s, opts.Filters, opts.Split)
	}

	var tokens []string
	for _, tok := range strings.Split(s, opts.Split) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	return tokens
}

// replaceFiltered substitutes every rune present in filters with sep.
func replaceFiltered(s, filters, sep string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if strings.ContainsRune(filters, r) {
			b.WriteString(sep)
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// charTokens drops filtered runes and returns each remaining rune as a token.
func charTokens(s, filters string) []string {
	var tokens []string
	for _, r := range s {
		if filters != "" && strings.ContainsRune(filters, r) {
			continue
		}
		tokens = append(tokens, string(r))
	}

	return tokens
}
