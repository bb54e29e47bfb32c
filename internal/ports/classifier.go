package ports

import (
	"context"
)

// Classifier is the opaque binary sentiment model. Predict receives normalized
// texts and must return exactly one label (0 or 1) per input, in input order.
type Classifier interface {
	Predict(ctx context.Context, texts []string) ([]int, error)
}
