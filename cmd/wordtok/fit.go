package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-wordtok/internal/config"
	textpkg "github.com/example/go-wordtok/internal/text"
)

func newFitCmd() *cobra.Command {
	var corpus string
	var out string
	var by string

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Build a vocabulary from a corpus and write the tokenizer record",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			corpusPath := cfg.Paths.CorpusPath
			if corpus != "" {
				corpusPath = corpus
			}
			raw, err := readCorpus(corpusPath, os.Stdin)
			if err != nil {
				return err
			}

			docs, err := splitDocuments(raw, by)
			if err != nil {
				return err
			}

			tok, err := newTokenizer(cfg)
			if err != nil {
				return err
			}
			tok.FitOnTexts(docs)

			data, err := tok.ToJSON()
			if err != nil {
				return err
			}

			recordPath := cfg.Paths.RecordPath
			if out != "" {
				recordPath = out
			}
			if err := writeRecord(recordPath, data, os.Stdout); err != nil {
				return err
			}

			slog.Info("fit complete",
				slog.Int("documents", tok.DocumentCount()),
				slog.Int("vocab_size", tok.VocabSize()),
				slog.String("record", recordPath),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpus, "corpus", "", "Corpus text file (if empty, uses --paths-corpus-path or stdin)")
	cmd.Flags().StringVar(&out, "out", "", "Record output path ('-' for stdout; default --paths-record-path)")
	cmd.Flags().StringVar(&by, "by", config.DocumentsByLine, "Document split mode (line|sentence)")

	return cmd
}

// readCorpus reads the corpus from path, or from fallback when path is empty.
func readCorpus(path string, fallback io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(fallback)
		if err != nil {
			return "", fmt.Errorf("read corpus from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read corpus: %w", err)
	}
	return string(data), nil
}

// splitDocuments turns a raw corpus into documents. Sentence mode flattens
// newlines to spaces first so sentences spanning line breaks stay whole.
func splitDocuments(raw, by string) ([]string, error) {
	mode, err := config.NormalizeDocumentMode(by)
	if err != nil {
		return nil, err
	}

	switch mode {
	case config.DocumentsBySentence:
		flat := strings.ReplaceAll(raw, "\r\n", " ")
		flat = strings.ReplaceAll(flat, "\r", " ")
		flat = strings.ReplaceAll(flat, "\n", " ")
		return textpkg.SplitSentences(flat), nil
	default:
		return textpkg.SplitLines(raw), nil
	}
}

func writeRecord(path string, data []byte, stdout io.Writer) error {
	if path == "-" {
		_, err := stdout.Write(append(data, '\n'))
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tokenizer record: %w", err)
	}
	return nil
}
