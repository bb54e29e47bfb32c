package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_tweet_sentiment/internal/core/domain"
	"github.com/baditaflorin/go_tweet_sentiment/internal/ports"
	"github.com/baditaflorin/go_tweet_sentiment/pkg/sentiment"
)

// pipeline is the part of sentiment.Pipeline the handlers use.
type pipeline interface {
	Normalize(texts []string) []string
	Predict(ctx context.Context, texts []string) ([]sentiment.Record, error)
}

// TextsRequest is the body of /predict and /normalize.
type TextsRequest struct {
	Texts []string `json:"texts"`
}

// PredictResponse is returned by /predict.
type PredictResponse struct {
	RequestID   string             `json:"request_id"`
	Predictions []sentiment.Record `json:"predictions"`
}

// NormalizeResponse is returned by /normalize.
type NormalizeResponse struct {
	RequestID  string   `json:"request_id"`
	Normalized []string `json:"normalized"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type server struct {
	pipeline       pipeline
	logger         ports.Logger
	maxBatchSize   int
	predictTimeout time.Duration
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	requestID := string(ctx.Request.Header.Peek("X-Request-ID"))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.SetUserValue("request_id", requestID)

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "SentimentServer")
	ctx.Response.Header.Set("X-Request-ID", requestID)

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/predict":
		s.handlePredict(ctx)
	case "/normalize":
		s.handleNormalize(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"request_id", requestID,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

// handleHealthCheck responds to health check requests
func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() && !ctx.IsHead() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *server) handlePredict(ctx *fasthttp.RequestCtx) {
	texts, ok := s.parseTexts(ctx)
	if !ok {
		return
	}

	c, cancel := context.WithTimeout(context.Background(), s.predictTimeout)
	defer cancel()

	records, err := s.pipeline.Predict(c, texts)
	if err != nil {
		s.logger.Error("Prediction failed", "request_id", requestID(ctx), "batch_size", len(texts), "error", err)
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			ctx.SetStatusCode(fasthttp.StatusGatewayTimeout)
			s.writeJSONError(ctx, "Prediction timed out")
		case errors.Is(err, domain.ErrLengthMismatch), errors.Is(err, domain.ErrUnknownPrediction):
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			s.writeJSONError(ctx, "Classifier returned an invalid result")
		default:
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			s.writeJSONError(ctx, "Prediction failed")
		}
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, PredictResponse{RequestID: requestID(ctx), Predictions: records})
}

func (s *server) handleNormalize(ctx *fasthttp.RequestCtx) {
	texts, ok := s.parseTexts(ctx)
	if !ok {
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, NormalizeResponse{RequestID: requestID(ctx), Normalized: s.pipeline.Normalize(texts)})
}

// parseTexts validates a POST {"texts": [...]} body. On failure it has already
// written the error response.
func (s *server) parseTexts(ctx *fasthttp.RequestCtx) ([]string, bool) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return nil, false
	}

	var req TextsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return nil, false
	}
	if len(req.Texts) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "At least one text is required")
		return nil, false
	}
	if s.maxBatchSize > 0 && len(req.Texts) > s.maxBatchSize {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, fmt.Sprintf("Too many texts: %d exceeds the limit of %d", len(req.Texts), s.maxBatchSize))
		return nil, false
	}
	return req.Texts, true
}

func requestID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("request_id").(string)
	return id
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message, RequestID: requestID(ctx)})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
