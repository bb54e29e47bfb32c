// Package classifier loads exported sentiment models and adapts them to ports.Classifier.
package classifier

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// Norm values accepted by LinearModel.Norm.
const (
	NormNone = ""
	NormL2   = "l2"
)

// LinearModel is a bag-of-n-grams linear classifier: optional tf-idf weighting
// followed by a single decision function. It is the exported form of a
// vectorizer + logistic regression pipeline.
type LinearModel struct {
	Name        string         `json:"name"`
	NGramMin    int            `json:"ngram_min"`
	NGramMax    int            `json:"ngram_max"`
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf,omitempty"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        string         `json:"norm"`
	Coef        []float64      `json:"coef"`
	Intercept   float64        `json:"intercept"`
}

// Load reads a model from path. The format follows the extension: .json or .gob.
func Load(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return decode(f, path)
}

// LoadFS reads a model named name from fsys.
func LoadFS(fsys fs.FS, name string) (*LinearModel, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return decode(f, name)
}

func decode(r io.Reader, name string) (*LinearModel, error) {
	var m LinearModel
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", name, err)
		}
	case ".gob":
		if err := gob.NewDecoder(r).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported model format %q", ext)
	}
	if m.NGramMin == 0 && m.NGramMax == 0 {
		m.NGramMin, m.NGramMax = 1, 1
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	return &m, nil
}

// Save writes the model to path in the format named by its extension.
func (m *LinearModel) Save(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	case ".gob":
		err = gob.NewEncoder(f).Encode(m)
	default:
		err = fmt.Errorf("unsupported model format %q", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Validate checks that the model is internally consistent.
func (m *LinearModel) Validate() error {
	if len(m.Coef) == 0 {
		return errors.New("model has no coefficients")
	}
	if len(m.Coef) != len(m.Vocabulary) {
		return fmt.Errorf("coefficient count %d does not match vocabulary size %d", len(m.Coef), len(m.Vocabulary))
	}
	for term, idx := range m.Vocabulary {
		if idx < 0 || idx >= len(m.Coef) {
			return fmt.Errorf("vocabulary term %q has index %d out of range", term, idx)
		}
	}
	if len(m.IDF) != 0 && len(m.IDF) != len(m.Coef) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(m.IDF), len(m.Coef))
	}
	if m.NGramMin < 1 || m.NGramMax < m.NGramMin {
		return fmt.Errorf("invalid n-gram range [%d, %d]", m.NGramMin, m.NGramMax)
	}
	if m.Norm != NormNone && m.Norm != NormL2 {
		return fmt.Errorf("unsupported norm %q", m.Norm)
	}
	return nil
}

// Predict returns domain.PredPositive for every text whose decision score is
// positive and domain.PredNegative otherwise.
func (m *LinearModel) Predict(ctx context.Context, texts []string) ([]int, error) {
	preds := make([]int, len(texts))
	x := make([]float64, len(m.Coef))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Score(text, x) > 0 {
			preds[i] = domain.PredPositive
		} else {
			preds[i] = domain.PredNegative
		}
	}
	return preds, nil
}

// Score computes the decision function for text. x is scratch space of
// len(m.Coef); nil allocates.
func (m *LinearModel) Score(text string, x []float64) float64 {
	if len(x) != len(m.Coef) {
		x = make([]float64, len(m.Coef))
	} else {
		clear(x)
	}

	m.vectorize(text, x)
	return floats.Dot(m.Coef, x) + m.Intercept
}

func (m *LinearModel) vectorize(text string, x []float64) {
	tokens := strings.Fields(text)
	for n := m.NGramMin; n <= m.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if idx, ok := m.Vocabulary[strings.Join(tokens[i:i+n], " ")]; ok {
				x[idx]++
			}
		}
	}

	if m.SublinearTF {
		for i, tf := range x {
			if tf > 0 {
				x[i] = 1 + math.Log(tf)
			}
		}
	}
	if len(m.IDF) != 0 {
		floats.Mul(x, m.IDF)
	}
	if m.Norm == NormL2 {
		if norm := floats.Norm(x, 2); norm > 0 {
			floats.Scale(1/norm, x)
		}
	}
}

// Func adapts an ordinary function to ports.Classifier.
type Func func(ctx context.Context, texts []string) ([]int, error)

// Predict calls f.
func (f Func) Predict(ctx context.Context, texts []string) ([]int, error) {
	return f(ctx, texts)
}

var (
	_ ports.Classifier = (*LinearModel)(nil)
	_ ports.Classifier = Func(nil)
)
