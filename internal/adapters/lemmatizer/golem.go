package lemmatizer

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// Golem lemmatizes English words with the golem lookup dictionary.
type Golem struct {
	lemmatizer *golem.Lemmatizer
}

// NewGolem loads the English dictionary. Loading decompresses the embedded
// dictionary and takes a noticeable fraction of a second, so build it once.
func NewGolem() (*Golem, error) {
	lm, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &Golem{lemmatizer: lm}, nil
}

// Lemma returns the dictionary base form of word. A lemma that differs from the
// word only by case is discarded so placeholder tokens such as "USER" survive.
func (g *Golem) Lemma(word string) string {
	lemma := g.lemmatizer.Lemma(word)
	if lemma == "" || strings.EqualFold(lemma, word) {
		return word
	}
	return lemma
}

// Identity returns every word unchanged.
type Identity struct{}

// Lemma returns word.
func (Identity) Lemma(word string) string {
	return word
}

// Map lemmatizes from a fixed lookup table; words not in the table are returned unchanged.
type Map map[string]string

// Lemma returns the mapped lemma or word itself.
func (m Map) Lemma(word string) string {
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}

var (
	_ ports.Lemmatizer = (*Golem)(nil)
	_ ports.Lemmatizer = Identity{}
	_ ports.Lemmatizer = Map(nil)
)
