package tweetsentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/classifier"
	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/lemmatizer"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/pkg/sentiment"
)

func testOptions(c sentiment.Classifier) []sentiment.Option {
	stop := lexicon.NewStopwordSet(lexicon.ManualStopwords(), lexicon.EnglishCorpus())
	lex := lexicon.New(lexicon.DefaultEmojiTable(), stop, lemmatizer.Identity{})
	return []sentiment.Option{sentiment.WithLexicon(lex), sentiment.WithClassifier(c)}
}

// lengthParity is positive for normalized texts with an even number of bytes.
var lengthParity = classifier.Func(func(_ context.Context, texts []string) ([]int, error) {
	out := make([]int, len(texts))
	for i, text := range texts {
		out[i] = 1 - len(text)%2
	}
	return out, nil
})

func TestPredictPipelineBeforeInit(t *testing.T) {
	reset()
	t.Cleanup(reset)

	_, err := PredictPipeline(context.Background(), []string{"hi"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Nil(t, Pipeline())
}

func TestPredictPipeline(t *testing.T) {
	reset()
	t.Cleanup(reset)
	require.NoError(t, Init(testOptions(lengthParity)...))

	texts := []string{"I hate twitter", "May the Force be with you.", "Mr. Stark, I don't feel so good"}
	first, err := PredictPipeline(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, first, len(texts))
	for i, rec := range first {
		assert.Equal(t, texts[i], rec.Text)
		assert.Contains(t, []string{"Negative", "Positive"}, rec.Label)
	}
	// "hate twitter" has 12 bytes.
	assert.Equal(t, PredictionRecord{Text: "I hate twitter", Pred: 1, Label: "Positive"}, first[0])

	second, err := PredictPipeline(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInitIsSticky(t *testing.T) {
	reset()
	t.Cleanup(reset)

	err := Init() // no classifier
	require.ErrorIs(t, err, sentiment.ErrNoClassifier)

	// A later, valid Init does not replace the failed one.
	err = Init(testOptions(lengthParity)...)
	assert.ErrorIs(t, err, sentiment.ErrNoClassifier)

	_, err = PredictPipeline(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, err, sentiment.ErrNoClassifier)
}

func TestInitOnlyOnce(t *testing.T) {
	reset()
	t.Cleanup(reset)

	require.NoError(t, Init(testOptions(lengthParity)...))
	first := Pipeline()

	failing := classifier.Func(func(context.Context, []string) ([]int, error) {
		return nil, errors.New("unused")
	})
	require.NoError(t, Init(testOptions(failing)...))
	assert.Same(t, first, Pipeline())
}
