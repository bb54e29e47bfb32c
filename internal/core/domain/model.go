package domain

import (
	"errors"
	"fmt"
)

// Sentiment labels produced for the two classifier outputs.
const (
	LabelNegative = "Negative"
	LabelPositive = "Positive"
)

// Numeric classifier outputs.
const (
	PredNegative = 0
	PredPositive = 1
)

var (
	// ErrUnknownPrediction is returned when the classifier emits a value outside {0, 1}.
	ErrUnknownPrediction = errors.New("classifier returned an unknown prediction")
	// ErrLengthMismatch is returned when the classifier output length differs from the input length.
	ErrLengthMismatch = errors.New("classifier output length does not match input length")
	// ErrNotInitialized is returned when the process-wide pipeline is used before initialization.
	ErrNotInitialized = errors.New("prediction pipeline is not initialized")
)

// PredictionRecord pairs an original (unnormalized) text with its prediction.
type PredictionRecord struct {
	Text  string `json:"text"`
	Pred  int    `json:"pred"`
	Label string `json:"label"`
}

// LabelFor maps a classifier output to its human-readable label.
func LabelFor(pred int) (string, error) {
	switch pred {
	case PredNegative:
		return LabelNegative, nil
	case PredPositive:
		return LabelPositive, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownPrediction, pred)
	}
}
