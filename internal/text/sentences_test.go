package text

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on periods",
			input: "First sentence. Second sentence.",
			want:  []string{"First sentence.", "Second sentence."},
		},
		{
			name:  "splits on exclamation and question marks",
			input: "Really! Is that so? Yes.",
			want:  []string{"Really!", "Is that so?", "Yes."},
		},
		{
			name:  "keeps trailing fragment without terminator",
			input: "Done. And then",
			want:  []string{"Done.", "And then"},
		},
		{
			name:  "drops empty segments",
			input: "One.. Two.",
			want:  []string{"One.", ".", "Two."},
		},
		{
			name:  "no terminator yields whole input",
			input: "no punctuation here",
			want:  []string{"no punctuation here"},
		},
		{
			name:  "empty input yields nothing",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "one document per line",
			input: "first\nsecond\nthird",
			want:  []string{"first", "second", "third"},
		},
		{
			name:  "normalizes CRLF line endings",
			input: "a\r\nb\rc",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "drops blank lines",
			input: "a\n\n  \nb\n",
			want:  []string{"a", "b"},
		},
		{
			name:  "trims surrounding whitespace per line",
			input: "  a  \n\tb\t",
			want:  []string{"a", "b"},
		},
		{
			name:  "empty input yields nothing",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
