package text

import (
	"reflect"
	"testing"
)

func TestNormalize_WordLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []string
	}{
		{
			name:  "lowercases and splits on spaces",
			input: "The Cat SAT",
			opts:  DefaultOptions(),
			want:  []string{"the", "cat", "sat"},
		},
		{
			name:  "strips punctuation",
			input: "hello, world!",
			opts:  DefaultOptions(),
			want:  []string{"hello", "world"},
		},
		{
			name:  "keeps apostrophes",
			input: "don't stop",
			opts:  DefaultOptions(),
			want:  []string{"don't", "stop"},
		},
		{
			name:  "filtered hyphen acts as word separator",
			input: "well-known fact",
			opts:  DefaultOptions(),
			want:  []string{"well", "known", "fact"},
		},
		{
			name:  "collapses repeated separators",
			input: "a  b   c",
			opts:  DefaultOptions(),
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "tabs and newlines are filtered",
			input: "one\ttwo\nthree",
			opts:  DefaultOptions(),
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "preserves case when lower disabled",
			input: "The Cat",
			opts:  Options{Filters: DefaultFilters, Split: DefaultSplit},
			want:  []string{"The", "Cat"},
		},
		{
			name:  "custom unicode filters",
			input: "it was — mostly — fine",
			opts:  Options{Filters: DefaultFilters + "—", Lower: true, Split: DefaultSplit},
			want:  []string{"it", "was", "mostly", "fine"},
		},
		{
			name:  "custom split separator",
			input: "a|b|c",
			opts:  Options{Lower: true, Split: "|"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "punctuation only yields no tokens",
			input: "!!! ... ???",
			opts:  DefaultOptions(),
			want:  nil,
		},
		{
			name:  "empty input yields no tokens",
			input: "",
			opts:  DefaultOptions(),
			want:  nil,
		},
		{
			name:  "separator only yields no tokens",
			input: "     ",
			opts:  DefaultOptions(),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_CharLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  []string
	}{
		{
			name:  "every remaining rune is a token",
			input: "ab c",
			opts:  Options{Lower: true, CharLevel: true, Split: DefaultSplit},
			want:  []string{"a", "b", " ", "c"},
		},
		{
			name:  "filtered runes are dropped",
			input: "a-b!",
			opts:  Options{Filters: DefaultFilters, Lower: true, CharLevel: true, Split: DefaultSplit},
			want:  []string{"a", "b"},
		},
		{
			name:  "lowercase applies before splitting into runes",
			input: "Ab",
			opts:  Options{Lower: true, CharLevel: true, Split: DefaultSplit},
			want:  []string{"a", "b"},
		},
		{
			name:  "multibyte runes stay whole",
			input: "été",
			opts:  Options{Lower: true, CharLevel: true, Split: DefaultSplit},
			want:  []string{"é", "t", "é"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_IsDeterministic(t *testing.T) {
	input := "The quick, brown fox — jumps!"
	opts := DefaultOptions()

	first := Normalize(input, opts)
	second := Normalize(input, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Normalize calls differ: %v vs %v", first, second)
	}
}
