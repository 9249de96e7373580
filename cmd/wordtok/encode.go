package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	textpkg "github.com/example/go-wordtok/internal/text"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode documents into token ID sequences",
		Long: "Encode documents into token ID sequences using a fitted tokenizer record.\n" +
			"Each argument is one document; with no arguments, every non-blank stdin\n" +
			"line is one document. Output is a JSON array of integer sequences.",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadFitted(cfg.Paths.RecordPath)
			if err != nil {
				return err
			}

			texts, err := readDocumentArgs(args, os.Stdin)
			if err != nil {
				return err
			}

			sequences, err := tok.TextsToSequences(texts)
			if err != nil {
				return err
			}

			return writeJSONStdout(sequences)
		},
	}

	return cmd
}

func readDocumentArgs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read documents from stdin: %w", err)
	}

	docs := textpkg.SplitLines(string(data))
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents given (pass arguments or pipe text to stdin)")
	}
	return docs, nil
}

func writeJSONStdout(v any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(v)
}
