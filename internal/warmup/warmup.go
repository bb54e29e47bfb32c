// Package warmup exercises the normalizer and predictors before traffic
// arrives, so lexicon pages, regex machines and buffer pools are hot.
package warmup

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of passes over the sample tweets per routine
	Iterations int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  100,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// sampleTweets cover every normalization step.
var sampleTweets = []string{
	"I hate twitter",
	"May the Force be with you.",
	"Mr. Stark, I don't feel so good",
	"@nasa this launch is sooooo cool!!! :) https://t.co/xyz",
	"Check www.example.com ;) ;-) <(-_-)>",
	"café crème naïve résumé",
	"",
}

// SampleTweets returns a copy of the texts used for warmup.
func SampleTweets() []string {
	out := make([]string, len(sampleTweets))
	copy(out, sampleTweets)
	return out
}

// Result summarizes a warmup run.
type Result struct {
	Normalized int64
	Predicted  int64
	Failures   int64
	Duration   time.Duration
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	normalizers []ports.Normalizer
	predictors  []ports.Predictor
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// RegisterPredictor adds a predictor to be warmed up
func (wm *Manager) RegisterPredictor(p ports.Predictor) {
	wm.predictors = append(wm.predictors, p)
}

// WarmUp runs the warmup process for all registered components. It returns
// once every routine has stopped, either after its iterations or when ctx or
// the configured duration expires.
func (wm *Manager) WarmUp(ctx context.Context) Result {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.normalizers)+len(wm.predictors),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	var res Result
	wm.warmUpNormalizers(ctx, &res)
	wm.warmUpPredictors(ctx, &res)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	res.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"duration", res.Duration,
		"normalized", res.Normalized,
		"predicted", res.Predicted,
		"failures", res.Failures,
	)
	return res
}

// run starts Concurrency routines, each calling pass Iterations times until ctx is done.
func (wm *Manager) run(ctx context.Context, pass func(ctx context.Context)) {
	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				pass(ctx)
			}
		}()
	}
	wg.Wait()
}

func (wm *Manager) warmUpNormalizers(ctx context.Context, res *Result) {
	if len(wm.normalizers) == 0 {
		return
	}
	wm.logger.Debug("Warming up normalizers", "count", len(wm.normalizers))

	wm.run(ctx, func(context.Context) {
		for _, normalizer := range wm.normalizers {
			for _, text := range sampleTweets {
				_ = normalizer.Normalize(text)
			}
			_ = normalizer.NormalizeBatch(sampleTweets)
			atomic.AddInt64(&res.Normalized, int64(2*len(sampleTweets)))
		}
	})
}

func (wm *Manager) warmUpPredictors(ctx context.Context, res *Result) {
	if len(wm.predictors) == 0 {
		return
	}
	wm.logger.Debug("Warming up predictors", "count", len(wm.predictors))

	var reported sync.Once
	wm.run(ctx, func(ctx context.Context) {
		for _, p := range wm.predictors {
			if _, err := p.Predict(ctx, sampleTweets); err != nil {
				atomic.AddInt64(&res.Failures, 1)
				reported.Do(func() {
					wm.logger.Warn("Predictor failed during warmup", "error", err)
				})
				continue
			}
			atomic.AddInt64(&res.Predicted, int64(len(sampleTweets)))
		}
	})
}
