// Package preprocess turns raw tweets into the canonical token strings the
// sentiment classifier was trained on.
package preprocess

import (
	"errors"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/internal/pool"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	urlToken  = " URL"
	userToken = " USER"

	minTokenLen = 2
)

var (
	urlPattern = regexp.MustCompile(`((http://)[^ ]*|(https://)[^ ]*|( www\.)[^ ]*)`)
	// Matches everything Unicode treats as whitespace, not just ASCII.
	userPattern = regexp.MustCompile(`@[^\s\v\p{Z}\x{1c}-\x{1f}\x{85}]+`)
)

// Normalizer implements ports.Normalizer over an immutable lexicon.
type Normalizer struct {
	lex    *lexicon.Lexicon
	logger ports.Logger

	bufs   *pool.BufferPool
	tokens *pool.TokenPool
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for debug tracing.
func WithLogger(log ports.Logger) Option {
	return func(n *Normalizer) {
		if log != nil {
			n.logger = log
		}
	}
}

// NewNormalizer creates a normalizer bound to lex.
func NewNormalizer(lex *lexicon.Lexicon, opts ...Option) (*Normalizer, error) {
	if lex == nil {
		return nil, errors.New("normalizer requires a lexicon")
	}
	if lex.Stopwords == nil || lex.Lemmatizer == nil || lex.Emoji.Len() == 0 {
		return nil, errors.New("normalizer requires emoji table, stopwords and lemmatizer")
	}

	n := &Normalizer{
		lex:    lex,
		logger: logger.Nop{},
		bufs:   pool.NewBufferPool(512),
		tokens: pool.NewTokenPool(64),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Normalize maps one raw text to its canonical token string. It never fails;
// an empty result is valid.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	// A Caser keeps state between calls, so each call gets its own.
	text = cases.Lower(language.Und).String(text)
	text = urlPattern.ReplaceAllLiteralString(text, urlToken)
	text = n.lex.Emoji.Replace(text)
	text = userPattern.ReplaceAllLiteralString(text, userToken)

	buf := n.bufs.Get(len(text))
	defer n.bufs.Put(buf)
	*buf = stripAndCompress(*buf, text)

	kept := n.tokens.Get()
	defer n.tokens.Put(kept)
	for _, tok := range strings.Fields(string(*buf)) {
		if len(tok) < minTokenLen || n.lex.Stopwords.Contains(tok) {
			continue
		}
		*kept = append(*kept, n.lex.Lemmatizer.Lemma(tok))
	}
	return strings.Join(*kept, " ")
}

// NormalizeBatch normalizes each text, preserving length and order.
func (n *Normalizer) NormalizeBatch(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = n.Normalize(text)
	}
	n.logger.Debug("Normalized batch", "size", len(texts))
	return out
}

var _ ports.Normalizer = (*Normalizer)(nil)
