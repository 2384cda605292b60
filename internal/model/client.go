package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mizunoe/kaiwa/internal/config"
	kaiwaErrors "github.com/mizunoe/kaiwa/internal/errors"
	"github.com/mizunoe/kaiwa/internal/logger"
	"github.com/mizunoe/kaiwa/internal/model/contract"
	anthropicProvider "github.com/mizunoe/kaiwa/internal/model/providers/anthropic"
	geminiProvider "github.com/mizunoe/kaiwa/internal/model/providers/gemini"
	openaiProvider "github.com/mizunoe/kaiwa/internal/model/providers/openai"
)

// Accounting accumulates token and cost totals for a single request.
// It is owned by one loop invocation and never shared across requests.
type Accounting struct {
	Tokens int
	Cost   float64
}

// Client wraps a completion provider with retry and usage accounting.
type Client struct {
	provider            Provider
	model               string
	apiKey              string
	maxRetries          int
	retryBaseDelay      time.Duration
	transientRetryDelay time.Duration
	requestTimeout      time.Duration
	pricePer1KTokens    float64
}

func NewClient(cfg config.ModelConfig) (*Client, error) {
	var provider Provider
	switch cfg.Provider {
	case "openai":
		provider = openaiProvider.New(cfg.APIKey, cfg.BaseURL)
	case "anthropic":
		provider = anthropicProvider.New(cfg.APIKey)
	case "gemini":
		p, err := geminiProvider.New(cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("gemini provider init: %w", err)
		}
		provider = p
	default:
		return nil, kaiwaErrors.InvalidInput(fmt.Sprintf("unknown provider type: %s", cfg.Provider))
	}

	retryBaseDelay, err := config.DurationOrDefault(cfg.RetryBaseDelay, config.DefaultModelRetryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("parse retry_base_delay: %w", err)
	}
	transientRetryDelay, err := config.DurationOrDefault(cfg.TransientRetryDelay, config.DefaultModelTransientRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("parse transient_retry_delay: %w", err)
	}
	requestTimeout, err := config.DurationOrDefault(cfg.RequestTimeout, config.DefaultModelRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse request_timeout: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = config.DefaultModelMaxRetries
	}
	price := cfg.PricePer1KTokens
	if price <= 0 {
		price = config.DefaultModelPricePer1KTokens
	}

	return &Client{
		provider:            provider,
		model:               cfg.Name,
		apiKey:              cfg.APIKey,
		maxRetries:          maxRetries,
		retryBaseDelay:      retryBaseDelay,
		transientRetryDelay: transientRetryDelay,
		requestTimeout:      requestTimeout,
		pricePer1KTokens:    price,
	}, nil
}

// Complete sends one prompt to the provider and returns the response text.
// Rate-limit errors retry with exponential backoff, transient network faults
// retry after a fixed short delay, anything else propagates immediately.
// Token and cost totals are added to acct only for the successful call.
func (c *Client) Complete(ctx context.Context, prompt string, acct *Accounting) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", kaiwaErrors.Internal("completion API credential not configured")
	}

	req := contract.CompletionRequest{Model: c.model, Prompt: prompt}
	traceID := logger.GetTraceID(ctx)

	backoff := c.retryBaseDelay
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.completeOnce(ctx, req)
		if err == nil {
			if strings.TrimSpace(resp.Content) == "" {
				return "", kaiwaErrors.Internal("completion response missing text")
			}
			tokens := resp.Usage.TotalTokens
			if tokens == 0 {
				tokens = resp.Usage.PromptTokens + resp.Usage.CompletionTokens
			}
			if acct != nil {
				acct.Tokens += tokens
				acct.Cost += float64(tokens) / 1000 * c.pricePer1KTokens
			}
			return resp.Content, nil
		}

		lastErr = err

		var delay time.Duration
		switch {
		case errors.Is(err, kaiwaErrors.ErrRateLimited):
			delay = backoff
			backoff *= 2
		case errors.Is(err, kaiwaErrors.ErrTransient):
			delay = c.transientRetryDelay
		default:
			return "", err
		}

		if attempt == c.maxRetries {
			break
		}

		slog.Warn("Completion attempt failed, retrying", "provider", c.provider.Name(), "attempt", attempt, "delay", delay, "error", err, "trace_id", traceID)
		select {
		case <-ctx.Done():
			return "", kaiwaErrors.Wrap(ctx.Err(), "completion cancelled")
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, req contract.CompletionRequest) (*contract.CompletionResponse, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	return c.provider.Complete(ctx, req)
}
