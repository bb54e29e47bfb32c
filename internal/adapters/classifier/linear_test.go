package classifier

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel() *LinearModel {
	return &LinearModel{
		Name:     "test",
		NGramMin: 1,
		NGramMax: 2,
		Vocabulary: map[string]int{
			"love":       0,
			"hate":       1,
			"good":       2,
			"not good":   3,
			"EMOJIsmile": 4,
		},
		Coef:      []float64{2, -2, 1, -3, 1.5},
		Intercept: -0.1,
	}
}

func TestLinearModelPredict(t *testing.T) {
	m := testModel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "positive word", text: "love twitter", want: 1},
		{name: "negative word", text: "hate twitter", want: 0},
		{name: "bigram outweighs unigram", text: "not good", want: 0},
		{name: "emoji placeholder", text: "EMOJIsmile", want: 1},
		{name: "empty text falls to intercept", text: "", want: 0},
		{name: "unknown words", text: "zzz qqq", want: 0},
		{name: "repeated terms count", text: "love hate hate", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Predict(context.Background(), []string{tc.text})
			require.NoError(t, err)
			assert.Equal(t, []int{tc.want}, got)
		})
	}
}

func TestLinearModelWeighting(t *testing.T) {
	m := &LinearModel{
		NGramMin:    1,
		NGramMax:    1,
		Vocabulary:  map[string]int{"a": 0, "b": 1},
		IDF:         []float64{1, 2},
		SublinearTF: true,
		Norm:        NormL2,
		Coef:        []float64{1, 1},
	}

	// "a b b": sublinear tf gives (1, 1+ln 2), idf scales b by 2, then l2 normalisation.
	x := make([]float64, 2)
	score := m.Score("a b b", x)

	b := 2 * (1 + math.Log(2))
	norm := math.Sqrt(1 + b*b)
	assert.InDelta(t, (1+b)/norm, score, 1e-9)
	assert.InDelta(t, 1/norm, x[0], 1e-9)
	assert.InDelta(t, b/norm, x[1], 1e-9)
}

func TestLinearModelPredictBatch(t *testing.T) {
	m := testModel()

	got, err := m.Predict(context.Background(), []string{"love", "hate", "good", ""})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 0}, got)

	got, err = m.Predict(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLinearModelPredictCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testModel().Predict(ctx, []string{"love"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	want := testModel()

	for _, name := range []string{"model.json", "model.gob"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, want.Save(path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want.Vocabulary, got.Vocabulary)
			assert.Equal(t, want.Coef, got.Coef)

			preds, err := got.Predict(context.Background(), []string{"love it", "not good"})
			require.NoError(t, err)
			assert.Equal(t, []int{1, 0}, preds)
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"models/tiny.json": &fstest.MapFile{Data: []byte(`{
			"vocabulary": {"love": 0},
			"coef": [1.0]
		}`)},
	}

	m, err := LoadFS(fsys, "models/tiny.json")
	require.NoError(t, err)
	assert.Equal(t, 1, m.NGramMin, "missing n-gram range defaults to unigrams")
	assert.Equal(t, 1, m.NGramMax)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	pickle := filepath.Join(dir, "model.pkl")
	require.NoError(t, os.WriteFile(pickle, []byte("x"), 0o644))
	_, err = Load(pickle)
	assert.ErrorContains(t, err, "unsupported model format")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"vocabulary":{"a":3},"coef":[1]}`), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "out of range")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *LinearModel)
	}{
		{name: "no coefficients", mutate: func(m *LinearModel) { m.Coef = nil }},
		{name: "size mismatch", mutate: func(m *LinearModel) { m.Coef = m.Coef[:2] }},
		{name: "idf mismatch", mutate: func(m *LinearModel) { m.IDF = []float64{1} }},
		{name: "bad ngram range", mutate: func(m *LinearModel) { m.NGramMin = 3 }},
		{name: "zero ngram", mutate: func(m *LinearModel) { m.NGramMin = 0 }},
		{name: "bad norm", mutate: func(m *LinearModel) { m.Norm = "l1" }},
	}

	assert.NoError(t, testModel().Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := testModel()
			tc.mutate(m)
			assert.Error(t, m.Validate())
		})
	}
}

func TestFunc(t *testing.T) {
	var got []string
	c := Func(func(_ context.Context, texts []string) ([]int, error) {
		got = texts
		return make([]int, len(texts)), nil
	})

	preds, err := c.Predict(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, preds)
	assert.Equal(t, []string{"a", "b"}, got)
}
