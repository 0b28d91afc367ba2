package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/expenserule/expenserule/internal/common"
)

// Client defines the interface for chat-completion providers.
type Client interface {
	// Complete sends a single chat completion and returns the first choice's
	// content. When the request carries an image it is attached to the user
	// message as a base64 data URI.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest describes one completion round trip. Sampling is always
// deterministic (temperature 0); the expected answers are short, so callers
// set a small output-token ceiling.
type CompletionRequest struct {
	System    string
	User      string
	ImageJPEG []byte
	MaxTokens int
}

// Config holds configuration for LLM clients.
type Config struct {
	Provider   string
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
	RetryDelay time.Duration
}

// NewClient creates an LLM client based on the provided configuration.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// RemoteError reports a transport-level failure talking to the completion
// service: network failure, non-success status, or an empty choice list.
type RemoteError struct {
	Err        error
	StatusCode int
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote service error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote service error: %v", e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// classifyRetry tags a completion failure for the retry loop: a 429 waits
// out the rate limit window, any other 4xx will fail the same way on the
// next attempt, and everything else (network failures, 5xx) is worth
// retrying. The original error stays in the chain either way.
func classifyRetry(err error) error {
	if err == nil {
		return nil
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.StatusCode == 0 {
		return err
	}
	switch {
	case re.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case re.StatusCode >= 400 && re.StatusCode < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	}
	return err
}
