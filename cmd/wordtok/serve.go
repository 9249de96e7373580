package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/go-wordtok/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve encode/decode over HTTP for a fitted tokenizer record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadFitted(cfg.Paths.RecordPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			slog.Info("serving tokenizer",
				slog.String("addr", cfg.Server.ListenAddr),
				slog.Int("vocab_size", tok.VocabSize()),
			)

			return server.New(cfg, tok).Start(ctx)
		},
	}

	return cmd
}
