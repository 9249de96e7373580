package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/go-wordtok/internal/config"
	"github.com/example/go-wordtok/internal/server"
	"github.com/example/go-wordtok/internal/tokenizer"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "wordtok",
		Short: "Word-level tokenizer command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newFitCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newWordsCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Tokenizer.Split == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// newTokenizer builds an unfitted tokenizer from the loaded configuration.
func newTokenizer(cfg config.Config) (*tokenizer.Tokenizer, error) {
	opts := []tokenizer.Option{
		tokenizer.WithFilters(cfg.Tokenizer.Filters),
		tokenizer.WithLower(cfg.Tokenizer.Lower),
		tokenizer.WithSplit(cfg.Tokenizer.Split),
		tokenizer.WithCharLevel(cfg.Tokenizer.CharLevel),
	}
	if cfg.Tokenizer.NumWords != 0 {
		opts = append(opts, tokenizer.WithNumWords(cfg.Tokenizer.NumWords))
	}
	if cfg.Tokenizer.OOVToken != "" {
		opts = append(opts, tokenizer.WithOOVToken(cfg.Tokenizer.OOVToken))
	}

	return tokenizer.New(opts...)
}

// loadFitted restores a fitted tokenizer from the record at path.
func loadFitted(path string) (*tokenizer.Tokenizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokenizer record: %w", err)
	}

	tok, err := tokenizer.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer record %q: %w", path, err)
	}

	return tok, nil
}
