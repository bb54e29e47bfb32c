package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/config"
	"github.com/baditaflorin/go_tweet_sentiment/internal/lexicon"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
	"github.com/baditaflorin/go_tweet_sentiment/internal/warmup"
	"github.com/baditaflorin/go_tweet_sentiment/pkg/sentiment"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	modelPath := flag.String("model", "", "Model artifact path, .json or .gob (overrides config)")
	logFile := flag.String("log-file", "", "Log file path (overrides config, empty = stdout)")
	warmUp := flag.Bool("warm-up", false, "Perform system warm-up on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	if *warmUp {
		cfg.Warmup.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	baseLogger, log, err := logger.NewFileLogger(cfg.Logging.File, cfg.Logging.JSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting sentiment HTTP server",
		"port", cfg.Server.Port,
		"model", cfg.Model.Path,
		"read_timeout", cfg.ReadTimeout(),
		"write_timeout", cfg.WriteTimeout(),
		"max_request_size", cfg.Server.MaxRequestSize,
		"max_batch_size", cfg.Server.MaxBatchSize,
		"concurrency", cfg.Server.Concurrency,
	)

	opts := []sentiment.Option{
		sentiment.WithLogger(baseLogger),
		sentiment.WithModelPath(cfg.Model.Path),
		sentiment.WithLexiconOptions(lexicon.Options{
			StopwordsFile:   cfg.Lexicon.StopwordsFile,
			StopwordLibrary: cfg.Lexicon.StopwordLibrary,
			Language:        cfg.Lexicon.Language,
			Lemmatizer:      cfg.Lexicon.Lemmatizer,
		}),
	}
	if cfg.Warmup.Enabled {
		wc := warmup.DefaultWarmupConfig()
		wc.Iterations = cfg.Warmup.Iterations
		if cfg.Warmup.Concurrency > 0 {
			wc.Concurrency = cfg.Warmup.Concurrency
		}
		opts = append(opts, sentiment.WithWarmUpConfig(wc))
	}

	p, err := sentiment.New(opts...)
	if err != nil {
		log.Error("Failed to initialize pipeline", "error", err)
		log.Close()
		os.Exit(1)
	}
	log.Info("Pipeline initialized", "warm_up", p.IsWarmedUp(), "cpus", runtime.NumCPU())

	s := &server{
		pipeline:       p,
		logger:         log,
		maxBatchSize:   cfg.Server.MaxBatchSize,
		predictTimeout: cfg.WriteTimeout(),
	}

	httpServer := &fasthttp.Server{
		Handler:               s.requestHandler,
		Name:                  "SentimentServer",
		ReadTimeout:           cfg.ReadTimeout(),
		WriteTimeout:          cfg.WriteTimeout(),
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	if err := run(httpServer, fmt.Sprintf(":%d", cfg.Server.Port), log); err != nil {
		log.Error("Server error", "error", err)
		log.Close()
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// run serves until SIGINT/SIGTERM or a listener error, then shuts down gracefully.
func run(httpServer *fasthttp.Server, addr string, log ports.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "address", addr)
		return httpServer.ListenAndServe(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		return httpServer.Shutdown()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
