// Package predict composes the normalizer with a classifier and maps its
// numeric output to labelled records.
package predict

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// Adapter implements ports.Predictor.
type Adapter struct {
	normalizer ports.Normalizer
	classifier ports.Classifier
	logger     ports.Logger
}

// NewAdapter creates an adapter. A nil logger discards output.
func NewAdapter(normalizer ports.Normalizer, classifier ports.Classifier, log ports.Logger) (*Adapter, error) {
	if normalizer == nil {
		return nil, errors.New("adapter requires a normalizer")
	}
	if classifier == nil {
		return nil, errors.New("adapter requires a classifier")
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Adapter{
		normalizer: normalizer,
		classifier: classifier,
		logger:     log,
	}, nil
}

// Predict normalizes texts, classifies them in one call and returns one record
// per input, in input order. Record.Text is the original, unnormalized text.
func (a *Adapter) Predict(ctx context.Context, texts []string) ([]domain.PredictionRecord, error) {
	if len(texts) == 0 {
		return []domain.PredictionRecord{}, nil
	}

	normalized := a.normalizer.NormalizeBatch(texts)

	preds, err := a.classifier.Predict(ctx, normalized)
	if err != nil {
		a.logger.Error("Classifier failed", "batch_size", len(texts), "error", err)
		return nil, fmt.Errorf("classifier predict: %w", err)
	}
	if len(preds) != len(texts) {
		a.logger.Error("Classifier returned wrong number of predictions",
			"expected", len(texts), "got", len(preds))
		return nil, fmt.Errorf("%w: %d inputs, %d predictions", domain.ErrLengthMismatch, len(texts), len(preds))
	}

	records := make([]domain.PredictionRecord, len(texts))
	for i, pred := range preds {
		label, err := domain.LabelFor(pred)
		if err != nil {
			a.logger.Error("Classifier returned unknown label", "index", i, "pred", pred)
			return nil, fmt.Errorf("prediction %d: %w", i, err)
		}
		records[i] = domain.PredictionRecord{Text: texts[i], Pred: pred, Label: label}
	}

	a.logger.Debug("Predicted batch", "size", len(records))
	return records, nil
}

var _ ports.Predictor = (*Adapter)(nil)
