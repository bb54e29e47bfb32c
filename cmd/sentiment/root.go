package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/config"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// cliOptions holds the persistent flags shared by all subcommands.
type cliOptions struct {
	configPath string
	modelPath  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "sentiment",
		Short:         "Tweet normalization and sentiment prediction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&opts.modelPath, "model", "m", "", "Model artifact path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging to stderr")

	rootCmd.AddCommand(newNormalizeCmd(opts))
	rootCmd.AddCommand(newPredictCmd(opts))
	return rootCmd
}

// load reads the configuration and applies flag overrides.
func (o *cliOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.modelPath != "" {
		cfg.Model.Path = o.modelPath
	}
	return cfg, nil
}

func lexiconOptions(cfg *config.Config) lexicon.Options {
	return lexicon.Options{
		StopwordsFile:   cfg.Lexicon.StopwordsFile,
		StopwordLibrary: cfg.Lexicon.StopwordLibrary,
		Language:        cfg.Lexicon.Language,
		Lemmatizer:      cfg.Lexicon.Lemmatizer,
	}
}

// newLogger returns a stderr logger in verbose mode and a no-op logger otherwise.
func (o *cliOptions) newLogger(cmd *cobra.Command) (ports.Logger, error) {
	if !o.verbose {
		return logger.Nop{}, nil
	}
	log, err := logger.NewCustomStdLogger(logger.DefaultConfig(cmd.ErrOrStderr(), false))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
