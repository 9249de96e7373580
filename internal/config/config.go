package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/go-wordtok/internal/text"
)

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
}

type PathsConfig struct {
	CorpusPath string `mapstructure:"corpus_path"`
	RecordPath string `mapstructure:"record_path"`
}

type TokenizerConfig struct {
	NumWords  int    `mapstructure:"num_words"`
	Filters   string `mapstructure:"filters"`
	Lower     bool   `mapstructure:"lower"`
	Split     string `mapstructure:"split"`
	CharLevel bool   `mapstructure:"char_level"`
	OOVToken  string `mapstructure:"oov_token"`
}

type ServerConfig struct {
	ListenAddr   string `mapstructure:"listen_addr"`
	MaxTextBytes int    `mapstructure:"max_text_bytes"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Paths: PathsConfig{
			CorpusPath: "",
			RecordPath: "tokenizer.json",
		},
		Tokenizer: TokenizerConfig{
			NumWords:  0,
			Filters:   text.DefaultFilters,
			Lower:     true,
			Split:     text.DefaultSplit,
			CharLevel: false,
			OOVToken:  "",
		},
		Server: ServerConfig{
			ListenAddr:   ":8080",
			MaxTextBytes: 1 << 20,
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.String("paths-corpus-path", defaults.Paths.CorpusPath, "Path to corpus text file (empty reads stdin)")
	fs.String("paths-record-path", defaults.Paths.RecordPath, "Path to tokenizer record JSON")
	fs.String("record", defaults.Paths.RecordPath, "Path to tokenizer record JSON (alias for --paths-record-path)")
	fs.Int("tokenizer-num-words", defaults.Tokenizer.NumWords, "Vocabulary cap for encoding (0 = unlimited)")
	fs.String("tokenizer-filters", defaults.Tokenizer.Filters, "Characters filtered from text before splitting")
	fs.Bool("tokenizer-lower", defaults.Tokenizer.Lower, "Lowercase text before tokenizing")
	fs.String("tokenizer-split", defaults.Tokenizer.Split, "Word separator")
	fs.Bool("tokenizer-char-level", defaults.Tokenizer.CharLevel, "Treat every character as a token")
	fs.String("tokenizer-oov-token", defaults.Tokenizer.OOVToken, "Placeholder for out-of-vocabulary words (empty drops them)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request body size in bytes")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("WORDTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths.record_path", "WORDTOK_RECORD", "WORDTOK_PATHS_RECORD_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind record env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("wordtok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("paths.corpus_path", c.Paths.CorpusPath)
	v.SetDefault("paths.record_path", c.Paths.RecordPath)
	v.SetDefault("tokenizer.num_words", c.Tokenizer.NumWords)
	v.SetDefault("tokenizer.filters", c.Tokenizer.Filters)
	v.SetDefault("tokenizer.lower", c.Tokenizer.Lower)
	v.SetDefault("tokenizer.split", c.Tokenizer.Split)
	v.SetDefault("tokenizer.char_level", c.Tokenizer.CharLevel)
	v.SetDefault("tokenizer.oov_token", c.Tokenizer.OOVToken)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("paths.corpus_path", "paths-corpus-path")
	v.RegisterAlias("paths.record_path", "paths-record-path")
	v.RegisterAlias("paths.record_path", "record")
	v.RegisterAlias("tokenizer.num_words", "tokenizer-num-words")
	v.RegisterAlias("tokenizer.filters", "tokenizer-filters")
	v.RegisterAlias("tokenizer.lower", "tokenizer-lower")
	v.RegisterAlias("tokenizer.split", "tokenizer-split")
	v.RegisterAlias("tokenizer.char_level", "tokenizer-char-level")
	v.RegisterAlias("tokenizer.oov_token", "tokenizer-oov-token")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
}
