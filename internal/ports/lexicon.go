package ports

// StopwordSet reports whether a lower-case word form is discarded before classification.
type StopwordSet interface {
	Contains(word string) bool
}

// Lemmatizer maps an inflected word form to its dictionary base form.
// Implementations must be pure: the same word always yields the same lemma.
type Lemmatizer interface {
	Lemma(word string) string
}
