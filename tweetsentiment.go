// Package tweetsentiment exposes the process-wide prediction pipeline: call
// Init once at startup, then PredictPipeline from any goroutine.
package tweetsentiment

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
	"github.com/baditaflorin/go_tweet_sentiment/pkg/sentiment"
)

// PredictionRecord is one prediction result.
type PredictionRecord = domain.PredictionRecord

// ErrNotInitialized is returned by PredictPipeline before a successful Init.
var ErrNotInitialized = domain.ErrNotInitialized

// state is the outcome of Init, published once.
type state struct {
	pipeline *sentiment.Pipeline
	err      error
}

var (
	initOnce sync.Once
	current  atomic.Pointer[state]
)

// Init builds the process-wide pipeline. Only the first call does any work;
// later calls return the first call's result, so a failed Init stays failed.
func Init(opts ...sentiment.Option) error {
	initOnce.Do(func() {
		p, err := sentiment.New(opts...)
		if err != nil {
			err = fmt.Errorf("initialize prediction pipeline: %w", err)
		}
		current.Store(&state{pipeline: p, err: err})
	})
	return current.Load().err
}

// PredictPipeline normalizes texts and classifies them with the process-wide
// pipeline. The result has one record per input, in input order.
func PredictPipeline(ctx context.Context, texts []string) ([]PredictionRecord, error) {
	s := current.Load()
	switch {
	case s == nil:
		return nil, ErrNotInitialized
	case s.err != nil:
		return nil, fmt.Errorf("%w: %w", ErrNotInitialized, s.err)
	}
	return s.pipeline.Predict(ctx, texts)
}

// Pipeline returns the process-wide pipeline, or nil before a successful Init.
func Pipeline() *sentiment.Pipeline {
	if s := current.Load(); s != nil {
		return s.pipeline
	}
	return nil
}

// reset forgets the process-wide pipeline. Tests only.
func reset() {
	initOnce = sync.Once{}
	current.Store(nil)
}
