// Package stream feeds newline-delimited texts through a predictor in batches.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/baditaflorin/go_tweet_sentiment/internal/adapters/logger"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
)

const (
	// DefaultBatchSize defines how many lines are sent to the predictor in one call
	DefaultBatchSize = 100

	// DefaultMaxLineSize bounds a single input line
	DefaultMaxLineSize = 1024 * 1024
)

// BatchConfig defines configuration for line batching
type BatchConfig struct {
	BatchSize   int
	MaxLineSize int
}

// LineBatcher reads one text per line and writes one JSON record per line.
type LineBatcher struct {
	logger    ports.Logger
	predictor ports.Predictor

	batchSize   int
	maxLineSize int
}

// NewLineBatcher creates a batcher. Zero config values fall back to defaults.
func NewLineBatcher(log ports.Logger, predictor ports.Predictor, config BatchConfig) *LineBatcher {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.MaxLineSize <= 0 {
		config.MaxLineSize = DefaultMaxLineSize
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &LineBatcher{
		logger:      log,
		predictor:   predictor,
		batchSize:   config.BatchSize,
		maxLineSize: config.MaxLineSize,
	}
}

// Process reads reader to EOF and returns the number of lines predicted.
// Output for every completed batch has been written when an error is returned.
func (b *LineBatcher) Process(ctx context.Context, reader io.Reader, writer io.Writer) (int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, min(64*1024, b.maxLineSize)), b.maxLineSize)

	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)

	batch := make([]string, 0, b.batchSize)
	lines := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		records, err := b.predictor.Predict(ctx, batch)
		if err != nil {
			return fmt.Errorf("predict lines %d-%d: %w", lines+1, lines+len(batch), err)
		}
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("write record: %w", err)
			}
		}
		lines += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			b.logger.Warn("Processing cancelled by context", "lines", lines, "error", err)
			return lines, err
		}
		// ScanLines drops the line terminator, LF or CRLF.
		batch = append(batch, scanner.Text())
		if len(batch) == b.batchSize {
			if err := flush(); err != nil {
				return lines, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("line %d exceeds %d bytes: %w", lines+len(batch)+1, b.maxLineSize, err)
		}
		b.logger.Warn("Error reading from input", "error", err)
		return lines, err
	}
	if err := flush(); err != nil {
		return lines, err
	}

	b.logger.Debug("Stream processed", "lines", lines)
	return lines, nil
}
