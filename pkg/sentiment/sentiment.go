// Package sentiment is the public entry point: it wires the lexicon, the
// normalizer and a classifier into a ready-to-use prediction pipeline.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/classifier"
	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/predict"
	"github.com/baditaflorin/go_tweet_sentiment/internal/core/preprocess"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
	"github.com/baditaflorin/go_tweet_sentiment/internal/warmup"
	"github.com/baditaflorin/l"
)

// Record is one prediction: the original text, the numeric output and its label.
type Record = domain.PredictionRecord

// Classifier is the single capability the pipeline needs from a model.
type Classifier = ports.Classifier

// Labels produced by the pipeline.
const (
	LabelNegative = domain.LabelNegative
	LabelPositive = domain.LabelPositive
)

// ErrNoClassifier is returned by New when neither a classifier nor a model path is configured.
var ErrNoClassifier = errors.New("sentiment: a classifier or model path is required")

// Pipeline normalizes tweets and predicts their sentiment. It is safe for concurrent use.
type Pipeline struct {
	normalizer *preprocess.Normalizer
	adapter    *predict.Adapter
	logger     ports.Logger
	warmed     atomic.Bool
}

// Option defines a functional option for configuring a Pipeline.
type Option func(*pipelineConfig)

type pipelineConfig struct {
	Logger       ports.Logger
	Classifier   ports.Classifier
	ModelPath    string
	Lexicon      *lexicon.Lexicon
	LexiconOpts  lexicon.Options
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(log l.Logger) Option {
	return func(cfg *pipelineConfig) {
		cfg.Logger = logger.FromExisting(log)
	}
}

// WithClassifier uses c instead of loading a model from disk.
func WithClassifier(c Classifier) Option {
	return func(cfg *pipelineConfig) {
		cfg.Classifier = c
	}
}

// WithModelPath loads a linear model artifact (.json or .gob) from path.
func WithModelPath(path string) Option {
	return func(cfg *pipelineConfig) {
		cfg.ModelPath = path
	}
}

// WithLexicon uses a prebuilt lexicon, typically a substitute in tests.
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(cfg *pipelineConfig) {
		cfg.Lexicon = lex
	}
}

// WithLexiconOptions controls how the default lexicon is loaded.
func WithLexiconOptions(opts lexicon.Options) Option {
	return func(cfg *pipelineConfig) {
		cfg.LexiconOpts = opts
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *pipelineConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *pipelineConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New builds a Pipeline. Loading is all-or-nothing: any failure returns an error
// and no pipeline.
func New(opts ...Option) (*Pipeline, error) {
	cfg := &pipelineConfig{
		LexiconOpts:  lexicon.DefaultOptions(),
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.Nop{}
	}

	clf := cfg.Classifier
	if clf == nil {
		if cfg.ModelPath == "" {
			return nil, ErrNoClassifier
		}
		model, err := classifier.Load(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Info("Model loaded", "path", cfg.ModelPath, "name", model.Name, "features", len(model.Coef))
		clf = model
	}

	lex := cfg.Lexicon
	if lex == nil {
		var err error
		lex, err = lexicon.Load(cfg.LexiconOpts)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}

	norm, err := preprocess.NewNormalizer(lex, preprocess.WithLogger(cfg.Logger))
	if err != nil {
		return nil, err
	}
	adapter, err := predict.NewAdapter(norm, clf, cfg.Logger)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		normalizer: norm,
		adapter:    adapter,
		logger:     cfg.Logger,
	}
	cfg.Logger.Info("Pipeline initialized", "emoji", lex.Emoji.Len())

	if cfg.WarmUp {
		p.WarmUp(context.Background(), cfg.WarmUpConfig)
	}
	return p, nil
}

// Normalize returns the canonical token string of each text, in input order.
func (p *Pipeline) Normalize(texts []string) []string {
	return p.normalizer.NormalizeBatch(texts)
}

// Predict classifies texts and returns one record per input, in input order.
func (p *Pipeline) Predict(ctx context.Context, texts []string) ([]Record, error) {
	return p.adapter.Predict(ctx, texts)
}

// WarmUp exercises the pipeline with sample tweets.
func (p *Pipeline) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	wm := warmup.NewManager(p.logger, config)
	wm.RegisterNormalizer(p.normalizer)
	wm.RegisterPredictor(p.adapter)
	wm.WarmUp(ctx)
	p.warmed.Store(true)
}

// IsWarmedUp reports whether WarmUp has run.
func (p *Pipeline) IsWarmedUp() bool {
	return p.warmed.Load()
}

// Close releases the logger.
func (p *Pipeline) Close() error {
	return p.logger.Close()
}
