package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/stream"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/preprocess"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
)

func newNormalizeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Print the normalized form of each text",
		Long: `Normalize prints one normalized line per input text.

Texts are taken from the arguments, or read one per line from stdin when no
arguments are given. No model is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, err := opts.newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Close()

			lex, err := lexicon.Load(lexiconOptions(cfg))
			if err != nil {
				return fmt.Errorf("load lexicon: %w", err)
			}
			norm, err := preprocess.NewNormalizer(lex, preprocess.WithLogger(log))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, text := range norm.NormalizeBatch(args) {
					fmt.Fprintln(out, text)
				}
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, 0, 64*1024), stream.DefaultMaxLineSize)
			for scanner.Scan() {
				fmt.Fprintln(out, norm.Normalize(scanner.Text()))
			}
			return scanner.Err()
		},
	}
}
