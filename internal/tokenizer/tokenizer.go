// Package tokenizer maps words to integer token IDs ranked by corpus
// frequency, in the manner of classic word-level vocabularies: fit on a
// corpus once, then encode text to ID sequences and decode them back.
//
// A Tokenizer is not safe for concurrent use during fitting. Once fitted,
// encode and decode are read-only and may run concurrently with each other.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/go-wordtok/internal/text"
)

// oovIndex is the index reserved for the out-of-vocabulary token.
const oovIndex = 1

type settings struct {
	norm        text.Options
	numWords    int
	numWordsSet bool
	oovToken    string
}

// Option configures a Tokenizer at construction.
type Option func(*settings)

// WithNumWords caps the vocabulary used for encoding: only the n-1 most
// frequent words stay in-vocabulary, everything ranked n or later is
// treated as out-of-vocabulary. Zero means uncapped.
func WithNumWords(n int) Option {
	return func(s *settings) {
		s.numWords = n
		s.numWordsSet = true
	}
}

// WithFilters sets the characters stripped from text before splitting.
func WithFilters(filters string) Option {
	return func(s *settings) { s.norm.Filters = filters }
}

// WithLower controls lowercasing of input text. Defaults to true.
func WithLower(lower bool) Option {
	return func(s *settings) { s.norm.Lower = lower }
}

// WithSplit sets the word separator. Defaults to a single space.
func WithSplit(split string) Option {
	return func(s *settings) { s.norm.Split = split }
}

// WithCharLevel switches to character-level tokens.
func WithCharLevel(charLevel bool) Option {
	return func(s *settings) { s.norm.CharLevel = charLevel }
}

// WithOOVToken sets the placeholder word substituted for out-of-vocabulary
// words during encoding. It is assigned index 1. Empty means OOV words are
// silently dropped instead.
func WithOOVToken(token string) Option {
	return func(s *settings) { s.oovToken = token }
}

// Tokenizer owns a normalization configuration and a frequency-ranked
// vocabulary. The zero value is not usable; construct with New.
type Tokenizer struct {
	cfg      settings
	vocab    *vocabulary
	docCount int
	fitted   bool
}

// New returns an unfitted Tokenizer with the given options applied over
// the defaults (lowercase, punctuation filters, space split, no cap, no
// OOV token). Invalid combinations fail immediately with ErrInvalidConfig.
func New(opts ...Option) (*Tokenizer, error) {
	cfg := settings{norm: text.DefaultOptions()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &Tokenizer{cfg: cfg, vocab: newVocabulary()}, nil
}

func validate(cfg settings) error {
	if cfg.numWordsSet && cfg.numWords <= 0 {
		return fmt.Errorf("%w: num_words must be positive, got %d", ErrInvalidConfig, cfg.numWords)
	}
	if cfg.norm.CharLevel && cfg.norm.Split != text.DefaultSplit {
		return fmt.Errorf("%w: char_level does not combine with a custom split separator", ErrInvalidConfig)
	}
	if !cfg.norm.CharLevel && cfg.norm.Split == "" {
		return fmt.Errorf("%w: split separator must not be empty", ErrInvalidConfig)
	}
	return nil
}

// FitOnTexts normalizes each document and folds its tokens into the
// vocabulary. Calls are cumulative: counts merge with earlier fits and the
// document count grows by len(texts). The ranked mapping is recomputed
// eagerly before returning, so WordIndex and the transform methods are
// valid immediately.
func (t *Tokenizer) FitOnTexts(texts []string) {
	for _, doc := range texts {
		t.vocab.add(text.Normalize(doc, t.cfg.norm))
	}
	t.docCount += len(texts)
	t.vocab.rebuild(t.cfg.oovToken)
	t.fitted = true
}

// FitOnTokens is FitOnTexts for pre-tokenized documents: normalization is
// skipped except for lowercasing. In char-level mode every token must be a
// single character; a multi-character token means the input was split
// inconsistently with the configuration and fails with ErrInvalidConfig.
func (t *Tokenizer) FitOnTokens(docs [][]string) error {
	if t.cfg.norm.CharLevel {
		for _, doc := range docs {
			for _, tok := range doc {
				if utf8.RuneCountInString(tok) > 1 {
					return fmt.Errorf("%w: char_level fit received multi-character token %q", ErrInvalidConfig, tok)
				}
			}
		}
	}

	for _, doc := range docs {
		if t.cfg.norm.Lower {
			lowered := make([]string, len(doc))
			for i, tok := range doc {
				lowered[i] = strings.ToLower(tok)
			}
			doc = lowered
		}
		t.vocab.add(doc)
	}
	t.docCount += len(docs)
	t.vocab.rebuild(t.cfg.oovToken)
	t.fitted = true

	return nil
}

// TextsToSequences encodes each document into a sequence of token IDs.
// Words outside the fitted vocabulary, or ranked at or beyond the
// num_words cap, become the OOV index when an OOV token is configured and
// are dropped otherwise. Returns ErrNotFitted before the first fit.
func (t *Tokenizer) TextsToSequences(texts []string) ([][]int, error) {
	if !t.fitted {
		return nil, ErrNotFitted
	}

	sequences := make([][]int, len(texts))
	for i, doc := range texts {
		tokens := text.Normalize(doc, t.cfg.norm)
		seq := make([]int, 0, len(tokens))

		for _, tok := range tokens {
			idx, ok := t.vocab.index(tok)
			switch {
			case ok && (t.cfg.numWords == 0 || idx < t.cfg.numWords):
				seq = append(seq, idx)
			case t.cfg.oovToken != "":
				seq = append(seq, oovIndex)
			}
		}
		sequences[i] = seq
	}

	return sequences, nil
}

// SequencesToTexts decodes each ID sequence back into a space-joined
// string. IDs with no vocabulary entry are dropped, never replaced by the
// OOV token, since an arbitrary unmapped integer has no recoverable word.
// Decoding does not undo filtering, casing, or OOV collapsing, so the
// round trip through TextsToSequences is lossy by design.
// Returns ErrNotFitted before the first fit.
func (t *Tokenizer) SequencesToTexts(sequences [][]int) ([]string, error) {
	if !t.fitted {
		return nil, ErrNotFitted
	}

	texts := make([]string, len(sequences))
	for i, seq := range sequences {
		words := make([]string, 0, len(seq))
		for _, id := range seq {
			if w, ok := t.vocab.word(id); ok {
				words = append(words, w)
			}
		}
		texts[i] = strings.Join(words, " ")
	}

	return texts, nil
}

// WordCounts returns a copy of the accumulated word counts. The OOV token
// has no count entry unless it literally occurred in the corpus.
func (t *Tokenizer) WordCounts() map[string]int {
	counts := make(map[string]int, len(t.vocab.entries))
	for _, e := range t.vocab.entries {
		counts[e.word] = e.count
	}
	return counts
}

// WordIndex returns a copy of the word-to-index mapping. Index 1 is the
// OOV token when one is configured; lower index means higher frequency.
func (t *Tokenizer) WordIndex() map[string]int {
	idx := make(map[string]int, t.vocab.size())
	for w, i := range t.vocab.rankOf {
		idx[w] = i
	}
	return idx
}

// IndexWord returns a copy of the index-to-word mapping, the exact inverse
// of WordIndex.
func (t *Tokenizer) IndexWord() map[int]string {
	inv := make(map[int]string, t.vocab.size())
	for i, w := range t.vocab.ranked {
		inv[i+1] = w
	}
	return inv
}

// VocabSize returns the number of indexed words, including the OOV token.
func (t *Tokenizer) VocabSize() int {
	return t.vocab.size()
}

// DocumentCount returns the number of documents seen across all fits.
func (t *Tokenizer) DocumentCount() int {
	return t.docCount
}

// NumWords returns the configured vocabulary cap, zero when uncapped.
func (t *Tokenizer) NumWords() int {
	return t.cfg.numWords
}

// OOVToken returns the configured out-of-vocabulary token, empty when
// unset.
func (t *Tokenizer) OOVToken() string {
	return t.cfg.oovToken
}
