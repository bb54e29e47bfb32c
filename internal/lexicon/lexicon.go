// Package lexicon builds the immutable lookup tables used by the normalizer:
// the emoticon table, the stopword set and the lemmatizer.
package lexicon

import (
	"fmt"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/lemmatizer"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// Lemmatizer kinds accepted by Options.Lemmatizer.
const (
	LemmatizerGolem = "golem"
	LemmatizerNone  = "none"
)

// Options controls how a Lexicon is assembled.
type Options struct {
	// StopwordsFile replaces the embedded English corpus when set.
	StopwordsFile string
	// StopwordLibrary also consults the bbalet/stopwords corpus for Language.
	StopwordLibrary bool
	// Language is the ISO 639-1 code used with StopwordLibrary.
	Language string
	// Lemmatizer selects the lemmatizer: "golem" (default) or "none".
	Lemmatizer string
	// Emoji overrides the reference emoticon table when non-nil.
	Emoji []EmojiEntry
}

// DefaultOptions returns the reference lexicon configuration.
func DefaultOptions() Options {
	return Options{
		Language:   "en",
		Lemmatizer: LemmatizerGolem,
	}
}

// Lexicon bundles the read-only tables. It is safe for concurrent use.
type Lexicon struct {
	Emoji      EmojiTable
	Stopwords  ports.StopwordSet
	Lemmatizer ports.Lemmatizer
}

// Load assembles a Lexicon. Any failure leaves nothing partially initialized.
func Load(opts Options) (*Lexicon, error) {
	emoji := DefaultEmojiTable()
	if opts.Emoji != nil {
		var err error
		emoji, err = NewEmojiTable(opts.Emoji)
		if err != nil {
			return nil, err
		}
	}

	corpus := EnglishCorpus()
	if opts.StopwordsFile != "" {
		var err error
		corpus, err = ReadCorpusFile(opts.StopwordsFile)
		if err != nil {
			return nil, err
		}
	}
	stop := NewStopwordSet(manualStopwords, corpus)
	if opts.StopwordLibrary {
		lang := opts.Language
		if lang == "" {
			lang = "en"
		}
		stop = stop.WithLibraryCorpus(lang)
	}

	var lm ports.Lemmatizer
	switch opts.Lemmatizer {
	case "", LemmatizerGolem:
		g, err := lemmatizer.NewGolem()
		if err != nil {
			return nil, err
		}
		lm = g
	case LemmatizerNone:
		lm = lemmatizer.Identity{}
	default:
		return nil, fmt.Errorf("unknown lemmatizer %q", opts.Lemmatizer)
	}

	return &Lexicon{
		Emoji:      emoji,
		Stopwords:  stop,
		Lemmatizer: lm,
	}, nil
}

// New bundles caller-supplied tables, typically substitutes in tests.
func New(emoji EmojiTable, stop ports.StopwordSet, lm ports.Lemmatizer) *Lexicon {
	return &Lexicon{Emoji: emoji, Stopwords: stop, Lemmatizer: lm}
}
