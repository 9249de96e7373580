package tokenizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func fitted(t *testing.T, opts ...Option) *Tokenizer {
	t.Helper()

	tok := mustNew(t, opts...)
	tok.FitOnTexts([]string{"the cat sat", "the dog ran"})
	return tok
}

func TestToJSON_BeforeFit(t *testing.T) {
	tok := mustNew(t)

	if _, err := tok.ToJSON(); !errors.Is(err, ErrNotFitted) {
		t.Errorf("ToJSON error = %v, want ErrNotFitted", err)
	}
}

func TestToJSON_IsDeterministic(t *testing.T) {
	tok := fitted(t, WithOOVToken("<UNK>"), WithNumWords(4))

	first, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	second, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two exports of the same fitted state differ")
	}
}

func TestToJSON_FieldSet(t *testing.T) {
	tok := fitted(t, WithOOVToken("<UNK>"), WithNumWords(4))

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var rec map[string]json.RawMessage
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}

	for _, field := range []string{
		"num_words", "filters", "lower", "split", "char_level",
		"oov_token", "document_count", "word_counts", "word_index", "index_word",
	} {
		if _, ok := rec[field]; !ok {
			t.Errorf("record missing field %q", field)
		}
	}

	// index_word keys are strings in interchange form.
	var indexWord map[string]string
	if err := json.Unmarshal(rec["index_word"], &indexWord); err != nil {
		t.Fatalf("index_word does not decode with string keys: %v", err)
	}
	if indexWord["1"] != "<UNK>" {
		t.Errorf(`index_word["1"] = %q, want "<UNK>"`, indexWord["1"])
	}
}

func TestToJSON_WordCountsKeepFirstSeenOrder(t *testing.T) {
	tok := mustNew(t)
	tok.FitOnTexts([]string{"zebra apple", "apple zebra"})

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	s := string(data)
	if strings.Index(s, `"zebra"`) > strings.Index(s, `"apple"`) {
		t.Error("word_counts lost first-seen ordering in serialized form")
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	tok := fitted(t, WithOOVToken("<UNK>"), WithNumWords(4))

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	if !reflect.DeepEqual(restored.WordIndex(), tok.WordIndex()) {
		t.Errorf("restored WordIndex = %v, want %v", restored.WordIndex(), tok.WordIndex())
	}
	if !reflect.DeepEqual(restored.WordCounts(), tok.WordCounts()) {
		t.Errorf("restored WordCounts = %v, want %v", restored.WordCounts(), tok.WordCounts())
	}
	if restored.DocumentCount() != tok.DocumentCount() {
		t.Errorf("restored DocumentCount = %d, want %d", restored.DocumentCount(), tok.DocumentCount())
	}

	// The restored tokenizer encodes identically, cap and OOV included.
	input := []string{"the fox sat"}
	wantSeqs, err := tok.TextsToSequences(input)
	if err != nil {
		t.Fatalf("TextsToSequences: %v", err)
	}
	gotSeqs, err := restored.TextsToSequences(input)
	if err != nil {
		t.Fatalf("restored TextsToSequences: %v", err)
	}
	if !reflect.DeepEqual(gotSeqs, wantSeqs) {
		t.Errorf("restored encoding = %v, want %v", gotSeqs, wantSeqs)
	}

	// And the re-export is byte-identical to the original.
	again, err := restored.ToJSON()
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if !bytes.Equal(again, data) {
		t.Error("re-export after round trip is not byte-identical")
	}
}

func TestFromJSON_RoundTripPreservesTieBreak(t *testing.T) {
	tok := mustNew(t)
	tok.FitOnTexts([]string{"zebra apple", "apple zebra"})

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	idx := restored.WordIndex()
	if idx["zebra"] != 1 || idx["apple"] != 2 {
		t.Errorf("restored WordIndex = %v, want zebra=1 apple=2", idx)
	}
}

func TestFromJSON_MissingFields(t *testing.T) {
	tok := fitted(t, WithOOVToken("<UNK>"))

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	for _, field := range []string{
		"filters", "split", "document_count", "word_counts", "word_index", "index_word",
	} {
		t.Run(field, func(t *testing.T) {
			var rec map[string]json.RawMessage
			if err := json.Unmarshal(data, &rec); err != nil {
				t.Fatalf("unmarshal record: %v", err)
			}
			delete(rec, field)
			mangled, err := json.Marshal(rec)
			if err != nil {
				t.Fatalf("remarshal record: %v", err)
			}

			_, err = FromJSON(mangled)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("FromJSON error = %v, want ErrInvalidRecord", err)
			}
			if !strings.Contains(err.Error(), field) {
				t.Errorf("error %q does not name missing field %q", err, field)
			}
		})
	}
}

func TestFromJSON_MalformedJSON(t *testing.T) {
	if _, err := FromJSON([]byte("{not json")); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("FromJSON error = %v, want ErrInvalidRecord", err)
	}
}

func TestFromJSON_InconsistentWordIndex(t *testing.T) {
	tok := fitted(t, WithOOVToken("<UNK>"))

	data, err := tok.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var rec map[string]json.RawMessage
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}

	// Swap two index assignments so word_index no longer matches the
	// ranking derived from word_counts.
	var wordIndex map[string]int
	if err := json.Unmarshal(rec["word_index"], &wordIndex); err != nil {
		t.Fatalf("unmarshal word_index: %v", err)
	}
	wordIndex["the"], wordIndex["cat"] = wordIndex["cat"], wordIndex["the"]
	rec["word_index"], err = json.Marshal(wordIndex)
	if err != nil {
		t.Fatalf("remarshal word_index: %v", err)
	}
	mangled, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("remarshal record: %v", err)
	}

	if _, err := FromJSON(mangled); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("FromJSON error = %v, want ErrInvalidRecord", err)
	}
}

func TestFromJSON_NegativeCount(t *testing.T) {
	record := `{
		"filters": "",
		"lower": true,
		"split": " ",
		"char_level": false,
		"document_count": 1,
		"word_counts": {"the": -1},
		"word_index": {"the": 1},
		"index_word": {"1": "the"}
	}`

	if _, err := FromJSON([]byte(record)); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("FromJSON error = %v, want ErrInvalidRecord", err)
	}
}
