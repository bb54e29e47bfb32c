package lemmatizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolemLemma(t *testing.T) {
	lm, err := NewGolem()
	require.NoError(t, err)

	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "plural noun", word: "cats", want: "cat"},
		{name: "base form", word: "cat", want: "cat"},
		{name: "url placeholder", word: "URL", want: "URL"},
		{name: "user placeholder", word: "USER", want: "USER"},
		{name: "emoji tag", word: "EMOJIsmile", want: "EMOJIsmile"},
		{name: "unknown word", word: "zzqxj", want: "zzqxj"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, lm.Lemma(tc.word))
		})
	}
}

func TestMapLemma(t *testing.T) {
	m := Map{"better": "good", "running": "run"}

	assert.Equal(t, "good", m.Lemma("better"))
	assert.Equal(t, "run", m.Lemma("running"))
	assert.Equal(t, "walk", m.Lemma("walk"))
	assert.Equal(t, "walk", Identity{}.Lemma("walk"))
}
