package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [sequence...]",
		Short: "Decode token ID sequences back into text",
		Long: "Decode token ID sequences back into text using a fitted tokenizer record.\n" +
			"Each argument is one comma-separated sequence (e.g. \"2,1,5\"); with no\n" +
			"arguments, stdin is read as a JSON array of integer sequences. Output is\n" +
			"a JSON array of strings.",
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadFitted(cfg.Paths.RecordPath)
			if err != nil {
				return err
			}

			sequences, err := readSequenceArgs(args, os.Stdin)
			if err != nil {
				return err
			}

			texts, err := tok.SequencesToTexts(sequences)
			if err != nil {
				return err
			}

			return writeJSONStdout(texts)
		},
	}

	return cmd
}

func readSequenceArgs(args []string, stdin io.Reader) ([][]int, error) {
	if len(args) == 0 {
		var sequences [][]int
		if err := json.NewDecoder(stdin).Decode(&sequences); err != nil {
			return nil, fmt.Errorf("read sequences from stdin: %w", err)
		}
		return sequences, nil
	}

	sequences := make([][]int, len(args))
	for i, arg := range args {
		seq, err := parseSequence(arg)
		if err != nil {
			return nil, err
		}
		sequences[i] = seq
	}
	return sequences, nil
}

func parseSequence(arg string) ([]int, error) {
	seq := []int{}
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid token ID %q in sequence %q", part, arg)
		}
		seq = append(seq, id)
	}
	return seq, nil
}
