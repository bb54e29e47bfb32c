package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	tweetsentiment "github.com/baditaflorin/go_tweet_sentiment"
	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/stream"
	"github.com/baditaflorin/go_tweet_sentiment/pkg/sentiment"
)

// demoTexts are the sample sentences printed by --demo.
var demoTexts = []string{
	"I hate twitter",
	"May the Force be with you.",
	"Mr. Stark, I don't feel so good",
}

func newPredictCmd(opts *cliOptions) *cobra.Command {
	var (
		file      string
		batchSize int
		demo      bool
	)

	cmd := &cobra.Command{
		Use:   "predict [text...]",
		Short: "Predict the sentiment of each text",
		Long: `Predict prints one JSON record {"text","pred","label"} per input text.

Texts come from the arguments, from --file, or from stdin one per line.
File and stdin input is sent to the model in batches of --batch-size.`,
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

			pipelineOpts := []sentiment.Option{
				sentiment.WithModelPath(cfg.Model.Path),
				sentiment.WithLexiconOptions(lexiconOptions(cfg)),
			}
			if std, ok := log.(*logger.StdLogger); ok {
				pipelineOpts = append(pipelineOpts, sentiment.WithLogger(std.Base()))
			}
			if err := tweetsentiment.Init(pipelineOpts...); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()

			switch {
			case demo:
				return predictTexts(ctx, out, demoTexts)
			case len(args) > 0:
				return predictTexts(ctx, out, args)
			}

			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			batcher := stream.NewLineBatcher(log, tweetsentiment.Pipeline(), stream.BatchConfig{BatchSize: batchSize})
			n, err := batcher.Process(ctx, in, out)
			log.Info("Predicted lines", "lines", n)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read texts from this file, one per line")
	cmd.Flags().IntVar(&batchSize, "batch-size", stream.DefaultBatchSize, "Texts per model call for file/stdin input")
	cmd.Flags().BoolVar(&demo, "demo", false, "Predict the built-in sample sentences")
	return cmd
}

func predictTexts(ctx context.Context, out io.Writer, texts []string) error {
	records, err := tweetsentiment.PredictPipeline(ctx, texts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
