// Package llm talks to an OpenAI-compatible chat completions API (Groq by
// default) through langchaingo.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eatwise/internal/config"
	"eatwise/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	SystemPrompt = "You are a nutrition and calorie analysis assistant. Respond clearly and accurately."

	defaultBaseBackoff = 500 * time.Millisecond
)

var (
	// ErrUnavailable is returned when no API key is configured.
	ErrUnavailable = errors.New("llm: no API key configured")
	ErrEmptyReply  = errors.New("llm: empty reply")
)

// Completer turns a user prompt into the model's reply text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client sends a system message plus one user message per call.
type Client struct {
	model       llms.Model
	temperature float64
	maxTokens   int
	limiter     *rate.Limiter
	maxRetries  int
	baseBackoff time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// New builds a Completer from cfg. Without an API key it returns Unavailable.
func New(cfg config.LLMConfig, logger *zap.Logger) (Completer, error) {
	if cfg.APIKey == "" {
		logger.Warn("llm api key not set, AI replies will use the demo fallback")
		return Unavailable{}, nil
	}

	model, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.APIKey),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create llm client: %w", err)
	}
	return NewWithModel(model, cfg, logger), nil
}

// NewWithModel wraps an existing langchaingo model.
func NewWithModel(model llms.Model, cfg config.LLMConfig, logger *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		limiter:     rate.NewLimiter(limit, burst),
		maxRetries:  cfg.MaxRetries,
		baseBackoff: defaultBaseBackoff,
		logger:      logger.Named("llm"),
		metrics:     metrics.Default(),
	}
}

// Complete waits for the limiter, then calls the model, retrying failed
// attempts with exponential backoff.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := c.complete(ctx, prompt)
	c.metrics.LLMDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.LLMCallsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	c.metrics.LLMCallsTotal.WithLabelValues("ok").Inc()
	return reply, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	opts := []llms.CallOption{llms.WithTemperature(c.temperature)}
	if c.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.maxTokens))
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		reply, err := c.generate(ctx, messages, opts)
		if err == nil {
			return reply, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
		c.logger.Warn("chat completion failed", zap.Int("attempt", attempt+1), zap.Error(err))
		if !retryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) generate(ctx context.Context, messages []llms.MessageContent, opts []llms.CallOption) (string, error) {
	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Content)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// the openai client reports API failures as "API returned unexpected status code: N"
var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// retryable reports whether err may succeed on a later attempt. Client errors
// other than timeouts and rate limiting will not.
func retryable(err error) bool {
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return true
	}
	code, _ := strconv.Atoi(m[1])
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 400 && code < 500:
		return false
	}
	return true
}

// Unavailable is the Completer used when the service runs without credentials.
type Unavailable struct{}

func (Unavailable) Complete(context.Context, string) (string, error) {
	metrics.Default().LLMCallsTotal.WithLabelValues("unavailable").Inc()
	return "", ErrUnavailable
}
