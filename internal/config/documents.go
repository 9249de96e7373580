package config

import (
	"fmt"
	"strings"
)

const (
	// DocumentsByLine treats every non-blank corpus line as one document.
	DocumentsByLine = "line"
	// DocumentsBySentence splits the corpus on sentence terminators.
	DocumentsBySentence = "sentence"
)

// NormalizeDocumentMode canonicalizes a corpus document-split mode.
// An empty value defaults to line mode.
func NormalizeDocumentMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		mode = DocumentsByLine
	}
	switch mode {
	case DocumentsByLine, DocumentsBySentence:
		return mode, nil
	case "lines", "sentences":
		return strings.TrimSuffix(mode, "s"), nil
	default:
		return "", fmt.Errorf(
			"invalid document mode %q (expected %s|%s)",
			raw,
			DocumentsByLine,
			DocumentsBySentence,
		)
	}
}
