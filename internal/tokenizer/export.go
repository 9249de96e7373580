package tokenizer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is the portable JSON form of a fitted Tokenizer: the full
// configuration plus the accumulated counts and both directions of the
// ranked mapping. Field order and map-key ordering are deterministic, so
// exporting the same state twice yields byte-identical output.
type Record struct {
	NumWords      int            `json:"num_words,omitempty"`
	Filters       string         `json:"filters"`
	Lower         bool           `json:"lower"`
	Split         string         `json:"split"`
	CharLevel     bool           `json:"char_level"`
	OOVToken      string         `json:"oov_token,omitempty"`
	DocumentCount int            `json:"document_count"`
	WordCounts    orderedCounts  `json:"word_counts"`
	WordIndex     map[string]int `json:"word_index"`
	IndexWord     map[int]string `json:"index_word"`
}

// countPair is one word and its accumulated count.
type countPair struct {
	Word  string
	Count int
}

// orderedCounts serializes word counts as a JSON object whose keys keep
// their first-seen corpus order. encoding/json maps would sort the keys
// alphabetically and lose the order, which is the ranking tie-break: an
// export/import round trip would then rank equal-count words differently.
type orderedCounts []countPair

func (c orderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, pair := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", pair.Count)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *orderedCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("word_counts: expected object, got %v", tok)
	}

	var pairs orderedCounts
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		word, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("word_counts: non-string key %v", keyTok)
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("word_counts[%q]: %w", word, err)
		}
		if count < 0 {
			return fmt.Errorf("word_counts[%q]: negative count %d", word, count)
		}
		pairs = append(pairs, countPair{Word: word, Count: count})
	}

	*c = pairs
	return nil
}

// ToRecord snapshots the fitted state. Returns ErrNotFitted before the
// first fit, since an unfitted Tokenizer has no mapping to serialize.
func (t *Tokenizer) ToRecord() (Record, error) {
	if !t.fitted {
		return Record{}, ErrNotFitted
	}

	counts := make(orderedCounts, len(t.vocab.entries))
	for i, e := range t.vocab.entries {
		counts[i] = countPair{Word: e.word, Count: e.count}
	}

	return Record{
		NumWords:      t.cfg.numWords,
		Filters:       t.cfg.norm.Filters,
		Lower:         t.cfg.norm.Lower,
		Split:         t.cfg.norm.Split,
		CharLevel:     t.cfg.norm.CharLevel,
		OOVToken:      t.cfg.oovToken,
		DocumentCount: t.docCount,
		WordCounts:    counts,
		WordIndex:     t.WordIndex(),
		IndexWord:     t.IndexWord(),
	}, nil
}

// ToJSON renders the fitted state as indented JSON. Two exports of the
// same state are byte-for-byte identical.
func (t *Tokenizer) ToJSON() ([]byte, error) {
	rec, err := t.ToRecord()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tokenizer record: %w", err)
	}

	return data, nil
}

// FromJSON restores a fitted Tokenizer from a record produced by ToJSON.
// The ranked mapping is rebuilt from the word counts and cross-checked
// against the stored word_index and index_word fields; a missing field or
// any inconsistency fails with ErrInvalidRecord naming the field, and no
// partially restored Tokenizer is returned.
func FromJSON(data []byte) (*Tokenizer, error) {
	var raw struct {
		NumWords      *int           `json:"num_words"`
		Filters       *string        `json:"filters"`
		Lower         *bool          `json:"lower"`
		Split         *string        `json:"split"`
		CharLevel     *bool          `json:"char_level"`
		OOVToken      *string        `json:"oov_token"`
		DocumentCount *int           `json:"document_count"`
		WordCounts    *orderedCounts `json:"word_counts"`
		WordIndex     map[string]int `json:"word_index"`
		IndexWord     map[int]string `json:"index_word"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	required := []struct {
		name    string
		missing bool
	}{
		{"filters", raw.Filters == nil},
		{"split", raw.Split == nil},
		{"document_count", raw.DocumentCount == nil},
		{"word_counts", raw.WordCounts == nil},
		{"word_index", raw.WordIndex == nil},
		{"index_word", raw.IndexWord == nil},
	}
	for _, f := range required {
		if f.missing {
			return nil, fmt.Errorf("%w: missing field %q", ErrInvalidRecord, f.name)
		}
	}
	if *raw.DocumentCount < 0 {
		return nil, fmt.Errorf("%w: document_count is negative", ErrInvalidRecord)
	}

	opts := []Option{
		WithFilters(*raw.Filters),
		WithSplit(*raw.Split),
	}
	if raw.Lower != nil {
		opts = append(opts, WithLower(*raw.Lower))
	}
	if raw.CharLevel != nil {
		opts = append(opts, WithCharLevel(*raw.CharLevel))
	}
	if raw.NumWords != nil && *raw.NumWords != 0 {
		opts = append(opts, WithNumWords(*raw.NumWords))
	}
	if raw.OOVToken != nil {
		opts = append(opts, WithOOVToken(*raw.OOVToken))
	}

	t, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	for _, pair := range *raw.WordCounts {
		t.vocab.setCount(pair.Word, pair.Count)
	}
	t.vocab.rebuild(t.cfg.oovToken)
	t.docCount = *raw.DocumentCount
	t.fitted = true

	if err := checkMappings(t, raw.WordIndex, raw.IndexWord); err != nil {
		return nil, err
	}

	return t, nil
}

// checkMappings verifies that the stored mappings agree with the mapping
// derived from word_counts, and that they are mutual inverses.
func checkMappings(tok *Tokenizer, wordIndex map[string]int, indexWord map[int]string) error {
	if len(wordIndex) != tok.vocab.size() {
		return fmt.Errorf("%w: word_index has %d entries, word_counts derive %d",
			ErrInvalidRecord, len(wordIndex), tok.vocab.size())
	}
	if len(indexWord) != len(wordIndex) {
		return fmt.Errorf("%w: index_word has %d entries, word_index has %d",
			ErrInvalidRecord, len(indexWord), len(wordIndex))
	}

	for w, i := range wordIndex {
		derived, ok := tok.vocab.index(w)
		if !ok || derived != i {
			return fmt.Errorf("%w: word_index[%q] = %d is inconsistent with word_counts",
				ErrInvalidRecord, w, i)
		}
		if inv, ok := indexWord[i]; !ok || inv != w {
			return fmt.Errorf("%w: index_word[%d] = %q does not invert word_index",
				ErrInvalidRecord, i, inv)
		}
	}

	return nil
}
