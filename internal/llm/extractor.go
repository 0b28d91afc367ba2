package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/service"
)

// extractMaxTokens bounds the extraction answer; the expected response is a
// small JSON object.
const extractMaxTokens = 256

// extractionPrompt is the fixed instruction sent with every receipt image.
const extractionPrompt = `You are a receipt parser. Extract the following fields from this receipt image:
- merchant: The store or vendor name (string)
- date: The transaction date in YYYY-MM-DD format (string, or null if not found)
- amount: The total amount paid as a number without currency symbols (number, or null if not found)

Respond ONLY with a JSON object containing exactly these three keys: merchant, date, amount.
Do not include any explanation or additional text.

Example: {"merchant": "Staples", "date": "2024-03-15", "amount": 42.97}`

// Extractor sends a normalized receipt image to the vision model and parses
// the constrained JSON response into typed fields. Unlike the classifier it
// does not degrade: transport failures and unparseable responses surface as
// errors, because there is no safe default merchant name to guess.
type Extractor struct {
	client    Client
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

// NewExtractor creates a receipt field extractor.
func NewExtractor(client Client, logger *slog.Logger, retryOpts service.RetryOptions) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	// Single attempt by default: retries are opt-in via configuration.
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}
	return &Extractor{
		client:    client,
		logger:    logger,
		retryOpts: retryOpts,
	}
}

// Extract sends the normalized JPEG to the vision model and returns the
// parsed fields. The returned error is a *RemoteError for transport
// failures and a *ParseError for malformed responses.
func (e *Extractor) Extract(ctx context.Context, normalizedJPEG []byte) (*model.ReceiptFields, error) {
	if len(normalizedJPEG) == 0 {
		return nil, fmt.Errorf("no image data to extract from")
	}

	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = e.client.Complete(ctx, CompletionRequest{
			User:      extractionPrompt,
			ImageJPEG: normalizedJPEG,
			MaxTokens: extractMaxTokens,
		})
		return classifyRetry(completeErr)
	}, e.retryOpts)

	if err != nil {
		return nil, fmt.Errorf("receipt extraction failed: %w", err)
	}

	fields, err := parseReceiptFields(content)
	if err != nil {
		e.logger.Warn("receipt extraction response unparseable",
			"response_length", len(content),
			"error", err)
		return nil, err
	}

	e.logger.Debug("receipt fields extracted",
		"merchant", fields.Merchant,
		"has_date", fields.Date != nil,
		"has_amount", fields.Amount != nil)

	return fields, nil
}
