package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newWordsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "words",
		Short: "List vocabulary words by frequency rank",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadFitted(cfg.Paths.RecordPath)
			if err != nil {
				return err
			}

			limit := tok.VocabSize()
			if top > 0 && top < limit {
				limit = top
			}

			indexWord := tok.IndexWord()
			counts := tok.WordCounts()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tWORD\tCOUNT")
			for i := 1; i <= limit; i++ {
				word := indexWord[i]
				// The OOV token has no corpus count.
				fmt.Fprintf(w, "%d\t%s\t%d\n", i, word, counts[word])
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Show only the N highest-ranked words (0 = all)")

	return cmd
}
