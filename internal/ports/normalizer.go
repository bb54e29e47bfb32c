package ports

// Normalizer defines the interface for tweet normalization.
type Normalizer interface {
	// Normalize maps one raw text to its canonical token string.
	Normalize(text string) string
	// NormalizeBatch normalizes texts, one output per input, order preserved.
	NormalizeBatch(texts []string) []string
}
