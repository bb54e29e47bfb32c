package ports

import (
	"context"

	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
)

// Predictor runs the full normalize-classify-label flow over a batch of raw texts.
type Predictor interface {
	Predict(ctx context.Context, texts []string) ([]domain.PredictionRecord, error)
}
