package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/classifier"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
)

// execute runs the CLI with args and stdin and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "sentiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lexicon:\n  lemmatizer: none\n"), 0o644))
	return path
}

func TestNormalizeCommand(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out, err := execute(t, "", "normalize", "--config", cfg, "I hate twitter", "@bob :)")
	require.NoError(t, err)
	assert.Equal(t, "hate twitter\nUSER EMOJIsmile\n", out)

	out, err = execute(t, "loooove this!!!\nthe\n", "normalize", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "loove\n\n", out)
}

func TestNormalizeCommandLongLine(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())
	line := strings.Repeat("ab ", 100*1024)

	out, err := execute(t, line+"\n", "normalize", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(line)+"\n", out)
}

func decodeRecords(t *testing.T, out string) []domain.PredictionRecord {
	t.Helper()
	var records []domain.PredictionRecord
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var rec domain.PredictionRecord
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	return records
}

// The process-wide pipeline is initialized once, so every predict case shares one model.
func TestPredictCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	model := filepath.Join(dir, "model.json")
	require.NoError(t, (&classifier.LinearModel{
		NGramMin:   1,
		NGramMax:   1,
		Vocabulary: map[string]int{"hate": 0, "force": 1, "good": 2},
		Coef:       []float64{-2, 1, 1},
	}).Save(model))

	t.Run("args", func(t *testing.T) {
		out, err := execute(t, "", "predict", "--config", cfg, "--model", model, "I hate twitter", "so good")
		require.NoError(t, err)
		assert.Equal(t, []domain.PredictionRecord{
			{Text: "I hate twitter", Pred: 0, Label: "Negative"},
			{Text: "so good", Pred: 1, Label: "Positive"},
		}, decodeRecords(t, out))
	})

	t.Run("demo", func(t *testing.T) {
		out, err := execute(t, "", "predict", "--config", cfg, "--model", model, "--demo")
		require.NoError(t, err)
		records := decodeRecords(t, out)
		require.Len(t, records, 3)
		assert.Equal(t, "Negative", records[0].Label)
		assert.Equal(t, "Positive", records[1].Label)
		assert.Equal(t, "Mr. Stark, I don't feel so good", records[2].Text)
	})

	t.Run("stdin batches", func(t *testing.T) {
		out, err := execute(t, "hate\ngood\n\nforce\n", "predict", "--config", cfg, "--model", model, "--batch-size", "2")
		require.NoError(t, err)
		records := decodeRecords(t, out)
		require.Len(t, records, 4)
		assert.Equal(t, []int{0, 1, 0, 1}, []int{records[0].Pred, records[1].Pred, records[2].Pred, records[3].Pred})
	})

	t.Run("file", func(t *testing.T) {
		input := filepath.Join(dir, "tweets.txt")
		require.NoError(t, os.WriteFile(input, []byte("good times\r\nhate mondays\r\n"), 0o644))

		out, err := execute(t, "", "predict", "--config", cfg, "--model", model, "--file", input)
		require.NoError(t, err)
		records := decodeRecords(t, out)
		require.Len(t, records, 2)
		assert.Equal(t, "good times", records[0].Text)
		assert.Equal(t, "Negative", records[1].Label)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "predict", "--config", cfg, "--model", model, "--file", filepath.Join(dir, "nope.txt"))
		assert.Error(t, err)
	})
}
