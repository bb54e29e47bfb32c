package tweetsentiment

import (
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
)

// NewDefaultLogger creates the text logger to stdout that binaries and examples
// pass to sentiment.WithLogger.
func NewDefaultLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(logger.DefaultConfig(os.Stdout, false))
}
