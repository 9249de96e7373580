package tokenizer

import "sort"

// wordEntry is one word in the word table. Entries are appended in
// first-seen corpus order; that order is the ranking tie-break.
type wordEntry struct {
	word  string
	count int
}

// vocabulary accumulates word frequencies and derives the ranked
// word<->index bijection. The entries slice is the single source of truth;
// the ranked slice and rank map are both rebuilt from it in one pass, so
// the two directions of the mapping cannot drift apart.
type vocabulary struct {
	entries []wordEntry    // first-seen order
	byWord  map[string]int // word -> position in entries

	ranked []string       // ranked[i] holds the word with index i+1
	rankOf map[string]int // word -> 1-based index
}

func newVocabulary() *vocabulary {
	return &vocabulary{
		byWord: make(map[string]int),
		rankOf: make(map[string]int),
	}
}

// add counts one document's tokens into the running totals.
func (v *vocabulary) add(tokens []string) {
	for _, tok := range tokens {
		pos, ok := v.byWord[tok]
		if !ok {
			pos = len(v.entries)
			v.entries = append(v.entries, wordEntry{word: tok})
			v.byWord[tok] = pos
		}
		v.entries[pos].count++
	}
}

// setCount seeds a word's count directly, preserving call order as the
// first-seen order. Used when restoring a vocabulary from a record.
func (v *vocabulary) setCount(word string, count int) {
	pos, ok := v.byWord[word]
	if !ok {
		pos = len(v.entries)
		v.entries = append(v.entries, wordEntry{word: word})
		v.byWord[word] = pos
	}
	v.entries[pos].count = count
}

// rebuild recomputes the ranked mapping from the current counts: words
// sorted by descending count, ties broken by first-seen order, with index 1
// reserved for oovToken when non-empty. A corpus word equal to oovToken is
// not ranked twice; the reserved slot wins.
func (v *vocabulary) rebuild(oovToken string) {
	order := make([]int, len(v.entries))
	for i := range order {
		order[i] = i
	}
	// Stable sort over the insertion-ordered positions gives the
	// first-seen tie-break for equal counts.
	sort.SliceStable(order, func(a, b int) bool {
		return v.entries[order[a]].count > v.entries[order[b]].count
	})

	v.ranked = v.ranked[:0]
	if oovToken != "" {
		v.ranked = append(v.ranked, oovToken)
	}
	for _, pos := range order {
		w := v.entries[pos].word
		if w == oovToken {
			continue
		}
		v.ranked = append(v.ranked, w)
	}

	v.rankOf = make(map[string]int, len(v.ranked))
	for i, w := range v.ranked {
		v.rankOf[w] = i + 1
	}
}

// index returns the 1-based rank of word, valid after rebuild.
func (v *vocabulary) index(word string) (int, bool) {
	i, ok := v.rankOf[word]
	return i, ok
}

// word is the inverse of index.
func (v *vocabulary) word(index int) (string, bool) {
	if index < 1 || index > len(v.ranked) {
		return "", false
	}
	return v.ranked[index-1], true
}

// size returns the number of indexed words, including the OOV token.
func (v *vocabulary) size() int {
	return len(v.ranked)
}

// count returns the accumulated count for word.
func (v *vocabulary) count(word string) (int, bool) {
	pos, ok := v.byWord[word]
	if !ok {
		return 0, false
	}
	return v.entries[pos].count, true
}
