package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/expenserule/expenserule/internal/catalog"
	"github.com/expenserule/expenserule/internal/common"
	"github.com/expenserule/expenserule/internal/model"
	"github.com/expenserule/expenserule/internal/service"
)

// classifyMaxTokens bounds the classification answer; the expected response
// is a single short category name.
const classifyMaxTokens = 32

// Classifier asks the remote model to pick a Schedule C category for a
// merchant. Its result type makes the "always returns a valid category"
// guarantee structural: Classify returns a catalog member in every case,
// substituting the fallback category when the remote answer cannot be
// trusted. Classification is advisory — a human reviews every suggestion —
// so a flaky remote call must never block the caller.
type Classifier struct {
	client    Client
	catalog   *catalog.Catalog
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

// Suggestion is the classifier's answer. Category is always a member of the
// catalog; Degraded reports that the fallback was substituted because the
// remote tier failed or answered outside the closed category set.
type Suggestion struct {
	Category model.Category
	Degraded bool
}

// NewClassifier creates a remote classifier bound to a catalog.
func NewClassifier(client Client, cat *catalog.Catalog, logger *slog.Logger, retryOpts service.RetryOptions) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	// A failed classification degrades to the fallback anyway, so the
	// default is a single attempt; retries are opt-in via configuration.
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 1
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}
	return &Classifier{
		client:    client,
		catalog:   cat,
		logger:    logger,
		retryOpts: retryOpts,
	}
}

// systemPrompt embeds the full closed category list verbatim and instructs
// the model to answer with exactly one category name and nothing else.
func (c *Classifier) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are an IRS Schedule C tax categorization assistant. ")
	sb.WriteString("Given a merchant name, pick the single most appropriate category from the list below. ")
	sb.WriteString("Reply ONLY with the category name exactly as written, no punctuation, no explanation.\n\n")
	sb.WriteString("Categories:\n")
	for _, name := range c.catalog.Names() {
		sb.WriteString("- ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Classify asks the remote model to categorize the merchant. The raw,
// non-normalized merchant string is sent; the returned text is validated by
// exact trimmed match against the catalog. No fuzzy matching and no case
// folding: an inexact answer degrades to the fallback.
func (c *Classifier) Classify(ctx context.Context, merchant string) Suggestion {
	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = c.client.Complete(ctx, CompletionRequest{
			System:    c.systemPrompt(),
			User:      "Merchant: " + merchant,
			MaxTokens: classifyMaxTokens,
		})
		return classifyRetry(completeErr)
	}, c.retryOpts)

	if err != nil {
		c.logger.Warn("remote classification failed, using fallback category",
			"merchant", merchant,
			"error", err)
		return Suggestion{Category: c.catalog.Fallback(), Degraded: true}
	}

	name := strings.TrimSpace(content)
	if category, ok := c.catalog.Lookup(name); ok {
		c.logger.Debug("remote classification accepted",
			"merchant", merchant,
			"category", name)
		return Suggestion{Category: category}
	}

	c.logger.Warn("remote classification outside category set, using fallback",
		"merchant", merchant,
		"answer", name)
	return Suggestion{Category: c.catalog.Fallback(), Degraded: true}
}
