package sentiment

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/classifier"
	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/lemmatizer"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/internal/warmup"
)

func testLexicon() *lexicon.Lexicon {
	stop := lexicon.NewStopwordSet(lexicon.ManualStopwords(), lexicon.EnglishCorpus())
	return lexicon.New(lexicon.DefaultEmojiTable(), stop, lemmatizer.Identity{})
}

// hateClassifier is negative for any text containing "hate".
var hateClassifier = classifier.Func(func(_ context.Context, texts []string) ([]int, error) {
	out := make([]int, len(texts))
	for i, text := range texts {
		if !strings.Contains(text, "hate") {
			out[i] = 1
		}
	}
	return out, nil
})

func TestNewRequiresClassifier(t *testing.T) {
	_, err := New(WithLexicon(testLexicon()))
	assert.ErrorIs(t, err, ErrNoClassifier)
}

func TestNewBadModelPath(t *testing.T) {
	_, err := New(WithLexicon(testLexicon()), WithModelPath(filepath.Join(t.TempDir(), "missing.json")))
	assert.Error(t, err)
}

func TestPipelinePredict(t *testing.T) {
	p, err := New(WithClassifier(hateClassifier), WithLexicon(testLexicon()))
	require.NoError(t, err)
	defer p.Close()

	records, err := p.Predict(context.Background(), []string{"I hate twitter", "May the Force be with you.", "..."})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Record{Text: "I hate twitter", Pred: 0, Label: LabelNegative}, records[0])
	assert.Equal(t, LabelPositive, records[1].Label)
	assert.Equal(t, "...", records[2].Text, "empty normalized text still yields a record")
}

func TestPipelineNormalize(t *testing.T) {
	p, err := New(WithClassifier(hateClassifier), WithLexicon(testLexicon()))
	require.NoError(t, err)

	assert.Equal(t, []string{"hate twitter", "USER EMOJIsmile"}, p.Normalize([]string{"I hate twitter", "@bob :)"}))
}

func TestPipelineFromModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	model := &classifier.LinearModel{
		NGramMin:   1,
		NGramMax:   1,
		Vocabulary: map[string]int{"hate": 0, "love": 1},
		Coef:       []float64{-1, 1},
	}
	require.NoError(t, model.Save(path))

	p, err := New(WithModelPath(path), WithLexicon(testLexicon()))
	require.NoError(t, err)

	records, err := p.Predict(context.Background(), []string{"I hate Mondays", "I love Fridays"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, []int{records[0].Pred, records[1].Pred})
}

func TestPipelineWarmUp(t *testing.T) {
	p, err := New(
		WithClassifier(hateClassifier),
		WithLexicon(testLexicon()),
		WithWarmUpConfig(warmup.WarmupConfig{Concurrency: 2, Iterations: 3}),
	)
	require.NoError(t, err)
	assert.True(t, p.IsWarmedUp())
}

func TestPipelineWarmUpConcurrentWithReaders(t *testing.T) {
	p, err := New(WithClassifier(hateClassifier), WithLexicon(testLexicon()))
	require.NoError(t, err)
	assert.False(t, p.IsWarmedUp())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = p.IsWarmedUp()
			}
		}()
	}
	p.WarmUp(context.Background(), warmup.WarmupConfig{Concurrency: 1, Iterations: 1})
	wg.Wait()

	assert.True(t, p.IsWarmedUp())
}

func TestPipelineDefaultLexicon(t *testing.T) {
	if testing.Short() {
		t.Skip("loads the lemma dictionary")
	}
	p, err := New(WithClassifier(hateClassifier))
	require.NoError(t, err)

	got := p.Normalize([]string{"I hate twitter", "the cats are running"})
	assert.Equal(t, "hate twitter", got[0])
	assert.NotContains(t, got[1], "cats")
}
